package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in Gin and request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey    = contextKey("logger")
	requestIDKey = contextKey("requestID")
)

const requestIDHeader = "X-Request-ID"

// GetRequestIDFromContext retrieves the request ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetRequestIDFromContext(c *gin.Context) (string, bool) {
	idVal, exists := c.Get(string(requestIDKey))
	if !exists {
		// check in the request context as well
		return GetRequestIDFromCtx(c.Request.Context())
	}

	requestID, ok := idVal.(string)
	return requestID, ok
}

// GetRequestIDFromCtx retrieves the request ID from a request context.
func GetRequestIDFromCtx(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok && requestID != ""
}
