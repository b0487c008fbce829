// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-videostudio-be/pkg/provider"
)

// ErrorHandlerMiddleware is the single place errors become HTTP responses.
// Services return *ApiError (or *provider.Error from upstream adapters);
// anything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var apiErr *ApiError
		if errors.As(err, &apiErr) {
			return ctx.Status(apiErr.Status).
				JSON(ErrorResponseWithDetails(apiErr.Status, apiErr.Message, apiErr.Details))
		}

		var provErr *provider.Error
		if errors.As(err, &provErr) {
			status := provErr.HTTPStatus()
			return ctx.Status(status).
				JSON(ErrorResponseWithDetails(status, provErr.Message, map[string]interface{}{
					"provider": provErr.Provider,
				}))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
