package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/pkg/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if tenantID := c.GetString(tenantLogKey); tenantID != "" {
			fields = append(fields, zap.String("tenant_id", tenantID))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			log.Error("Request failed", err, fields...)
		case status >= 400:
			log.Warn("Request rejected", fields...)
		default:
			log.Info("Request handled", fields...)
		}
	}
}
