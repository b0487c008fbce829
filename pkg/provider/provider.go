package provider

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies upstream failures so controllers can map them to a
// stable HTTP status instead of probing provider-specific error shapes.
type ErrorKind string

const (
	KindAuth        ErrorKind = "auth"
	KindForbidden   ErrorKind = "forbidden"
	KindValidation  ErrorKind = "validation"
	KindRateLimited ErrorKind = "rate_limited"
	KindUnavailable ErrorKind = "unavailable"
	KindUnknown     ErrorKind = "unknown"
)

// Error is the single error type every adapter returns for upstream
// failures. Message is the best human-readable text the adapter could
// extract from the provider response.
type Error struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Status   int // upstream HTTP status, 0 when the call never completed
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Kind)
}

// HTTPStatus maps the error kind to the status code our API surfaces.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// KindFromStatus classifies an upstream HTTP status.
func KindFromStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// NewError builds a classified adapter error from an upstream status.
func NewError(providerName string, status int, message string) *Error {
	return &Error{
		Kind:     KindFromStatus(status),
		Provider: providerName,
		Message:  message,
		Status:   status,
	}
}

// Unreachable marks failures where the provider never answered
// (connect error, timeout, marshalling).
func Unreachable(providerName string, err error) *Error {
	return &Error{
		Kind:     KindUnavailable,
		Provider: providerName,
		Message:  err.Error(),
	}
}

// Result is the normalized success value of a generation call. URL points
// at the provider's ephemeral asset; RequestID is the provider-side id
// kept for support and metadata.
type Result struct {
	URL       string
	RequestID string
	Model     string
	// Text carries the payload for non-media operations (transcribe, script).
	Text string
	// DurationSec is set by video adapters when the provider reports it.
	DurationSec int
	// Data holds inline audio bytes for providers that return the asset
	// body directly instead of an ephemeral URL.
	Data        []byte
	ContentType string
}
