// FILE: internal/pkg/serverutils/validator.go
package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// 400 ApiError with one line per invalid field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return NewApiError(fiber.StatusBadRequest, err.Error())
	}

	messages := make([]string, 0, len(fieldErrors))
	details := make(map[string]interface{}, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		details[fe.Field()] = fe.Tag()
	}

	apiErr := NewApiError(fiber.StatusBadRequest, strings.Join(messages, "; "))
	apiErr.Details = details
	return apiErr
}
