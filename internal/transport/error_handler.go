package transport

import (
	"errors"

	"github.com/fabiobufalari/communication-service/internal/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler translates errors bubbling out of handlers into JSON error
// responses. Domain sentinels map to client codes, anything unrecognized is
// a 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusForError(err)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		}
		if requestID := RequestIDFromContext(c); requestID != "" {
			fields = append(fields, zap.String("requestId", requestID))
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request error", fields...)
		} else {
			logger.Warn("request rejected", fields...)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func statusForError(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
