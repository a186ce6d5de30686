// Package middleware contains any custom middleware used in the app
package middleware

import (
	"bitwise74/task-api/pkg/util"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader echoes the request ID back so clients can report it
const RequestIDHeader = "X-Request-ID"

// NewRequestIDMiddleware returns a new middleware function that generates a request ID for
// each incoming request and sets it as requestID
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := util.RequestID()

		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
