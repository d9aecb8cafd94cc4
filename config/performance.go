package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// PerformanceLogger logs request latency, tagging each line with the tenant
// so slow storefronts can be traced to a cafe.
func PerformanceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		log.Printf("[PERF] %s %s | Cafe: %s | Status: %d | Time: %v",
			c.Request.Method,
			c.Request.URL.Path,
			tenantLabel(c),
			c.Writer.Status(),
			latency)

		// Alert for slow requests
		if latency > 200*time.Millisecond {
			log.Printf("SLOW REQUEST: %s %s (cafe %s) took %v",
				c.Request.Method, c.Request.URL.Path, tenantLabel(c), latency)
		}
	}
}

// tenantLabel names the tenant behind a request: the storefront slug when
// present, otherwise the cafe id the auth middleware resolved.
func tenantLabel(c *gin.Context) string {
	if slug := c.Param("slug"); slug != "" {
		return slug
	}
	if id, ok := c.Get("cafeId"); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return "-"
}
