package serverutils

import (
	"errors"

	"shift-tracking-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors that escape the handlers
// into their HTTP status. Anything unrecognized stays a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, apperror.ErrUnauthorized):
			status = fiber.StatusForbidden
		case errors.Is(err, apperror.ErrPrecondition), errors.Is(err, apperror.ErrInvalidTransition):
			status = fiber.StatusUnprocessableEntity
		case errors.Is(err, apperror.ErrDuplicate):
			status = fiber.StatusConflict
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}
