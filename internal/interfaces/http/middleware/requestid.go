package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"melodia/internal/shared/constants"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier for log correlation.
// A client-supplied X-Request-ID is trusted as-is; otherwise one is
// generated. The ID is echoed back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}
