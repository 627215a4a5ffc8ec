package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbenaiss/whatsapp-client/metrics"
)

// httpMetrics records request counts and latencies per matched gin route.
// Unmatched requests are labelled with their raw path.
func httpMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
