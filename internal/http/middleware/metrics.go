package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prereqpath-backend/internal/observability"
)

// Metrics records request counts and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
