package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/tinyapp/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records latency and count per route template, so /u/:shortURL is
// one series rather than one per short code.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
