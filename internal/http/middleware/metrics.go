package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/observability"
)

// Metrics instruments HTTP request counts/latency.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.InflightInc()
		defer m.InflightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.ObserveRequest(c.Request.Method, route, status, time.Since(start))
	}
}
