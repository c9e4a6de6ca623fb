package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cookbookhq/backend/internal/pkg/logger"
)

// RequestLogger logs one line per request with method, path, status and
// latency.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString("request_id"),
		)
	}
}
