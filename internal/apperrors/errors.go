package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// AppError is an error carrying an HTTP-style status code and a client-safe message.
// The underlying cause, if any, is kept in Err and is reachable through errors.Unwrap.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewBadRequest reports missing or malformed input (400).
func NewBadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewConflict reports a uniqueness violation (409).
func NewConflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewUnauthorized reports a failed authentication (401).
func NewUnauthorized(message string, cause error) *AppError {
	if cause == nil {
		cause = ErrUnauthorized
	}
	return NewAppError(http.StatusUnauthorized, message, cause)
}

// NewNotFound reports a missing resource (404).
func NewNotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewInternal reports a server-side failure (500), keeping the cause for logging.
func NewInternal(message string, cause error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, cause)
}

// StatusCode returns the status carried by err, or 500 when err is not an AppError.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
