package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"warga-be-svc/pkg/logger"
)

// LoggerMiddleware logs one structured entry per request
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
			log.WithFields(fields).Error("Request completed with errors")
			return
		}

		if c.Writer.Status() >= 500 {
			log.WithFields(fields).Error("Request failed")
		} else {
			log.WithFields(fields).Info("Request completed")
		}
	}
}
