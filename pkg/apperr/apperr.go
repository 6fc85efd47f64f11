// Package apperr defines the error taxonomy shared by services and handlers.
//
// Every error that leaves the service layer is an *AppError so that handlers
// can map it onto an HTTP status without inspecting message text.
package apperr

import (
	"errors"
	"net/http"
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeUnavailable     = "MAIL_UNAVAILABLE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError carries a machine-readable code, a client-safe message and the
// HTTP status it maps to. Cause is for server-side logging only.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Cause      error
	Details    map[string]string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Validation is a 400 for malformed or duplicate input. Details holds
// per-field messages when available.
func Validation(msg string, details map[string]string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NotFound is a 404 for a named resource, e.g. NotFound("title").
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

func Unauthenticated(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthenticated,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

func TooManyRequests(msg string) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    msg,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Unavailable is a 503 for a failed out-of-band dependency (mail delivery).
func Unavailable(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// Internal wraps an unexpected failure. The message sent to clients is generic.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// As extracts the *AppError from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
