package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

// tenantLogKey carries the caller's tenant to the request logger only.
const tenantLogKey = "log.tenant_id"

// TokenParser validates an access token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// IdentityHandlerFunc is a handler that runs for an authenticated caller.
type IdentityHandlerFunc func(c *gin.Context, id auth.Identity)

// Predicate decides whether an identity may use a route, for example
// auth.Identity.CanManageUsers.
type Predicate func(auth.Identity) bool

type AuthMiddleware struct {
	tokens TokenParser
	logger *logger.Logger
}

func NewAuthMiddleware(tokens TokenParser, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// Authenticated resolves the caller from the bearer token and passes the
// identity to h. Any failure answers 401.
func (m *AuthMiddleware) Authenticated(h IdentityHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			m.logger.Debug("Rejected token", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		id, err := auth.IdentityFromClaims(claims)
		if err != nil {
			m.logger.Debug("Rejected token identity", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(tenantLogKey, id.TenantID)
		h(c, id)
	}
}

// Authorized is Authenticated plus a permission check answering 403.
func (m *AuthMiddleware) Authorized(allowed Predicate, h IdentityHandlerFunc) gin.HandlerFunc {
	return m.Authenticated(func(c *gin.Context, id auth.Identity) {
		if !allowed(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		h(c, id)
	})
}

// extractToken reads the bearer token. Browsers cannot set headers on a
// websocket handshake, so upgrades may pass it as the token query parameter.
func (m *AuthMiddleware) extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" || bearerToken[1] == "" {
			return "", false
		}
		return bearerToken[1], true
	}

	if websocket.IsWebSocketUpgrade(c.Request) {
		if token := c.Query("token"); token != "" {
			return token, true
		}
	}
	return "", false
}

// AnyOf combines predicates.
func AnyOf(predicates ...Predicate) Predicate {
	return func(id auth.Identity) bool {
		for _, p := range predicates {
			if p(id) {
				return true
			}
		}
		return false
	}
}
