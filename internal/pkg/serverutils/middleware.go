// FILE: internal/pkg/serverutils/middleware.go
package serverutils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// 400 the error handler can pass through.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
		}

		var fields []string
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				fields = append(fields, fieldErr.Field()+" failed "+fieldErr.Tag())
			}
		}
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(fields, "; "))
	}
	return nil
}

// ErrorHandlerMiddleware converts errors escaping handlers into the shared
// response envelope. Fiber errors keep their status code, anything else
// becomes a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := err.Error()

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
