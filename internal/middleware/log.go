package middleware

import (
	"time"

	"github.com/juanbracho/girasoulresale/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger records one structured line per request. Mutations are
// logged at info, reads at debug.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}

		entry := logging.L().WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Request.Method == "GET":
			entry.Debug("request")
		default:
			entry.Info("request")
		}
	}
}
