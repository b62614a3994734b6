package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Access returns a gin middleware that writes one log line per request.
// Server errors are logged at warn, everything else at info. Request bodies
// are never read.
func Access(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		if id := c.Writer.Header().Get("X-Request-ID"); id != "" {
			attrs = append(attrs, "request_id", id)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		l.Log(c.Request.Context(), level, "http_access", attrs...)
	}
}
