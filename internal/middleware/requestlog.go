package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pendulab/pendulum-backend/internal/logger"
)

type RequestLogger struct {
	log *logger.Logger
}

func NewRequestLogger(log *logger.Logger) *RequestLogger {
	middlewareLog := log.With("middleware", "RequestLogger")
	return &RequestLogger{log: middlewareLog}
}

// Handle emits one structured event per request: operation, path, outcome.
func (rl *RequestLogger) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rl.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
