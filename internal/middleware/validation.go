package middleware

import (
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type ValidationMiddleware struct {
	logger *logger.Logger
}

func NewValidationMiddleware(logger *logger.Logger) *ValidationMiddleware {
	return &ValidationMiddleware{
		logger: logger,
	}
}

// SanitizeInput strips null bytes and control characters from query
// parameters and headers (except Authorization).
func (m *ValidationMiddleware) SanitizeInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		changed := false
		for key, values := range query {
			for i, value := range values {
				sanitized := m.sanitizeString(value)
				if sanitized != value {
					m.logger.Info("Sanitized query parameter",
						zap.String("key", key),
						zap.String("sanitized", sanitized))
					query[key][i] = sanitized
					changed = true
				}
			}
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}

		for key, values := range c.Request.Header {
			if _, skip := structuredHeaders[strings.ToLower(key)]; skip {
				continue
			}
			for i, value := range values {
				sanitized := m.sanitizeString(value)
				if sanitized != value {
					m.logger.Info("Sanitized header",
						zap.String("key", key),
						zap.String("sanitized", sanitized))
					c.Request.Header[key][i] = sanitized
				}
			}
		}

		c.Next()
	}
}

// ValidateContentType ensures requests that carry a body use one of allowedTypes
func (m *ValidationMiddleware) ValidateContentType(allowedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasBody(c.Request) {
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		if contentType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type header is required"})
			c.Abort()
			return
		}

		// Remove charset and boundary parameters
		contentType = strings.Split(contentType, ";")[0]
		contentType = strings.ToLower(strings.TrimSpace(contentType))

		if !slices.Contains(allowedTypes, contentType) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error":         "Unsupported Content-Type",
				"allowed_types": allowedTypes,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return false
	}
	return r.ContentLength != 0
}

// ValidateRequestSize limits request body size
func (m *ValidationMiddleware) ValidateRequestSize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":         "Request body too large",
				"max_size":      maxSize,
				"received_size": c.Request.ContentLength,
			})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// structuredHeaders carry protocol syntax rather than user text. Multipart
// boundaries from browsers and curl start with runs of dashes.
var structuredHeaders = map[string]struct{}{
	"authorization": {},
	"content-type":  {},
}

// BlockSuspiciousPatterns blocks requests whose path or headers carry
// injection patterns. Query strings are left to SanitizeInput since ticket
// search text is free form.
func (m *ValidationMiddleware) BlockSuspiciousPatterns() gin.HandlerFunc {
	// Common SQL injection patterns
	sqlInjectionPatterns := []string{
		`(?i)(\bUNION\b.*\bSELECT\b)`,
		`(?i)(\bOR\b.*=.*\bOR\b)`,
		`(?i)(\bAND\b.*=.*\bAND\b)`,
		`(?i)(\bINSERT\b.*\bINTO\b)`,
		`(?i)(\bDELETE\b.*\bFROM\b)`,
		`(?i)(\bUPDATE\b.*\bSET\b)`,
		`(?i)(\bDROP\b.*\bTABLE\b)`,
		`(?i)(\bALTER\b.*\bTABLE\b)`,
		`--`,
		`/\*.*\*/`,
	}

	// XSS patterns
	xssPatterns := []string{
		`<script.*?>`,
		`javascript:`,
		`onload=`,
		`onclick=`,
		`onerror=`,
		`<iframe.*?>`,
		`<object.*?>`,
		`<embed.*?>`,
	}

	// Path traversal patterns
	pathTraversalPatterns := []string{
		`\.\.\/`,
		`\.\.\\`,
		`%2e%2e%2f`,
		`%2e%2e%5c`,
	}

	allPatterns := append(sqlInjectionPatterns, xssPatterns...)
	allPatterns = append(allPatterns, pathTraversalPatterns...)

	compiledPatterns := make([]*regexp.Regexp, len(allPatterns))
	for i, pattern := range allPatterns {
		compiledPatterns[i] = regexp.MustCompile(pattern)
	}

	return func(c *gin.Context) {
		// Check URL path
		if m.containsSuspiciousPattern(c.Request.URL.Path, compiledPatterns) {
			m.logger.Warn("Blocked suspicious request",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			c.Abort()
			return
		}

		for key, values := range c.Request.Header {
			if _, skip := structuredHeaders[strings.ToLower(key)]; skip {
				continue
			}
			for _, value := range values {
				if m.containsSuspiciousPattern(value, compiledPatterns) {
					m.logger.Warn("Blocked suspicious header",
						zap.String("key", key),
						zap.String("value", value),
						zap.String("ip", c.ClientIP()))
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
					c.Abort()
					return
				}
			}
		}

		c.Next()
	}
}

func (m *ValidationMiddleware) sanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters (except newline, carriage return, tab)
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= 32 || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func (m *ValidationMiddleware) containsSuspiciousPattern(input string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}
