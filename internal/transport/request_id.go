package transport

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDLocalKey = "requestId"

// RequestID propagates the caller's X-Request-ID, generating one when absent,
// and echoes it on the response for cross-service correlation.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Locals(requestIDLocalKey, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		return c.Next()
	}
}

// RequestIDFromContext returns the id stored by the RequestID middleware.
func RequestIDFromContext(c *fiber.Ctx) string {
	if value, ok := c.Locals(requestIDLocalKey).(string); ok {
		return value
	}
	return ""
}
