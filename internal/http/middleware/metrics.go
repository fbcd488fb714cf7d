package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver matches metrics.Metrics.ObserveHTTP.
type HTTPObserver func(method, route string, status int, elapsed time.Duration)

// Metrics records every request under its route template, not the raw path.
func Metrics(observe HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observe(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
