package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipregistry/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, route, query,
// status code, request latency, and request ID (if available).
//
// Behavior:
//   - Captures start time before request handling.
//   - After request is processed, calculates latency.
//   - 5xx responses are logged at error level, 4xx at warn, the rest at info.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"level":"info","service":"shipregistry","request_id":"123e...","method":"GET","path":"/rest/ships","status":200,"latency_ms":3,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		event := logger.L().Info()
		switch {
		case status >= 500:
			event = logger.L().Error()
		case status >= 400:
			event = logger.L().Warn()
		}
		event.
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("route", c.FullPath()).
			Str("query", rawQuery).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
