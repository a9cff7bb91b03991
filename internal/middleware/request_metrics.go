package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
)

// pathsToSkip contains paths that are not recorded in request metrics
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestMetricsMiddleware records request counts and latency per matched route.
// Unmatched paths are grouped under "unmatched" to keep label cardinality bounded.
func RequestMetricsMiddleware(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
