package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorhubbd/tutorhub-api/internal/service"
)

// Metrics times every request and feeds the HTTP metrics. The route
// template is used as the path label so IDs do not explode cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
