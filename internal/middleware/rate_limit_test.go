package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type RateLimitTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	client *redis.Client
	limit  *RateLimitMiddleware
}

func TestRateLimit(t *testing.T) {
	suite.Run(t, new(RateLimitTestSuite))
}

func (s *RateLimitTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.server = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.server.Addr()})
	s.limit = NewRateLimitMiddleware(s.client, &config.Config{DefaultRateLimit: 2}, logger.NewNop())
}

func (s *RateLimitTestSuite) TearDownTest() {
	s.client.Close()
}

// tenantRouter fakes the authenticated identity so the limiter can be
// exercised without tokens.
func (s *RateLimitTestSuite) tenantRouter() *gin.Engine {
	router := gin.New()
	handler := s.limit.TenantRateLimit(func(c *gin.Context, id auth.Identity) {
		c.Status(http.StatusOK)
	})
	router.GET("/:tenant", func(c *gin.Context) {
		handler(c, auth.Identity{UserID: "u1", TenantID: c.Param("tenant"), Role: domain.RoleClient})
	})
	return router
}

func (s *RateLimitTestSuite) get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *RateLimitTestSuite) TestTenantLimitIsPerTenant() {
	router := s.tenantRouter()

	s.Equal(http.StatusOK, s.get(router, "/tenant-a").Code)
	w := s.get(router, "/tenant-a")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("0", w.Header().Get("X-RateLimit-Remaining"))

	w = s.get(router, "/tenant-a")
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Contains(w.Body.String(), "Rate limit exceeded")

	s.Equal(http.StatusOK, s.get(router, "/tenant-b").Code)
}

func (s *RateLimitTestSuite) TestWindowExpires() {
	router := s.tenantRouter()
	s.get(router, "/tenant-a")
	s.get(router, "/tenant-a")
	s.Equal(http.StatusTooManyRequests, s.get(router, "/tenant-a").Code)

	s.server.FastForward(rateLimitWindow)

	s.Equal(http.StatusOK, s.get(router, "/tenant-a").Code)
}

func (s *RateLimitTestSuite) TestGlobalLimit() {
	router := gin.New()
	router.Use(s.limit.GlobalRateLimit(1))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	s.Equal(http.StatusOK, s.get(router, "/health").Code)
	s.Equal(http.StatusTooManyRequests, s.get(router, "/health").Code)
}

func (s *RateLimitTestSuite) TestFailsOpenWhenRedisIsDown() {
	router := s.tenantRouter()
	s.server.Close()

	s.Equal(http.StatusOK, s.get(router, "/tenant-a").Code)
}
