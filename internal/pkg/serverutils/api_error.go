// FILE: internal/pkg/serverutils/api_error.go
package serverutils

import "github.com/gofiber/fiber/v2"

// ApiError is the error type services return when they want to control the
// HTTP status of the response. The error-handler middleware translates it.
type ApiError struct {
	Status  int
	Message string
	Details map[string]interface{}
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

func (e *ApiError) WithDetail(key string, value interface{}) *ApiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func BadRequest(message string) *ApiError {
	return NewApiError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *ApiError {
	return NewApiError(fiber.StatusUnauthorized, message)
}

func PaymentRequired(message string, required int) *ApiError {
	return NewApiError(fiber.StatusPaymentRequired, message).WithDetail("required", required)
}

func Forbidden(message string) *ApiError {
	return NewApiError(fiber.StatusForbidden, message)
}

func NotFound(message string) *ApiError {
	return NewApiError(fiber.StatusNotFound, message)
}

func Conflict(message string) *ApiError {
	return NewApiError(fiber.StatusConflict, message)
}

func Internal(message string) *ApiError {
	return NewApiError(fiber.StatusInternalServerError, message)
}

func ServiceUnavailable(message string) *ApiError {
	return NewApiError(fiber.StatusServiceUnavailable, message)
}
