package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

const (
	defaultTenantRateLimit = 1000
	rateLimitWindow        = time.Minute
)

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// TenantRateLimit wraps an authenticated handler with per-tenant rate limiting
func (m *RateLimitMiddleware) TenantRateLimit(next IdentityHandlerFunc) IdentityHandlerFunc {
	return func(c *gin.Context, id auth.Identity) {
		limit := m.getTenantRateLimit()
		key := fmt.Sprintf("rate_limit:tenant:%s", id.TenantID)

		if !m.allow(c, key, limit, "Rate limit exceeded") {
			return
		}
		next(c, id)
	}
}

// GlobalRateLimit implements global rate limiting based on IP
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:global:%s", c.ClientIP())

		if !m.allow(c, key, limit, "Global rate limit exceeded") {
			return
		}
		c.Next()
	}
}

// allow counts the request against key and aborts with 429 once limit is
// reached within the window. Redis errors let the request through.
func (m *RateLimitMiddleware) allow(c *gin.Context, key string, limit int, message string) bool {
	ctx := c.Request.Context()
	reset := strconv.FormatInt(time.Now().Add(rateLimitWindow).Unix(), 10)

	current, err := m.redis.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		m.logger.Error("Redis error in rate limiting", err)
		return true
	}

	if current >= limit {
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", reset)

		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": message,
			"limit": limit,
			"reset": time.Now().Add(rateLimitWindow).Unix(),
		})
		return false
	}

	pipe := m.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		m.logger.Error("Redis pipeline error in rate limiting", err)
	}

	remaining := max(limit-(current+1), 0)
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", reset)
	return true
}

func (m *RateLimitMiddleware) getTenantRateLimit() int {
	if m.config.DefaultRateLimit > 0 {
		return m.config.DefaultRateLimit
	}
	return defaultTenantRateLimit
}
