package http

import (
	"errors"

	apperrors "jobhive/internal/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders errors as {"message": ...}. Internal failures are
// logged and the client only sees the generic message.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"
		if de, ok := apperrors.As(err); ok {
			status = de.HTTPStatus()
			message = de.Message
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"message": message})
	}
}

// withMessage replaces the client-facing message of internal failures so
// each route keeps its own generic wording.
func withMessage(err error, message string) error {
	if de, ok := apperrors.As(err); ok && de.HTTPStatus() < fiber.StatusInternalServerError {
		return err
	}
	return apperrors.New(apperrors.ErrTypeInternal, message, err)
}
