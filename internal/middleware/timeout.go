// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout attaches a deadline of d to the request context and runs the
// handler chain on the calling goroutine.
//
// A handler blocked on something that ignores its context is not
// interrupted. Storage and routing calls all take the request context, so
// they return once the deadline fires, and if the handler then returns
// without writing, Timeout answers 503 with the request ID.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() != nil && !c.Writer.Written() {
			body := gin.H{"error": "request timed out"}
			if id := GetRequestID(c); id != "" {
				body["request_id"] = id
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, body)
		}
	}
}
