// File: internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeAuth       ErrorType = "AUTH"
	ErrTypeConflict   ErrorType = "CONFLICT"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeUpstream   ErrorType = "UPSTREAM"
	ErrTypeStore      ErrorType = "STORE"
)

// AppError is the error every service hands back to the HTTP boundary.
// Message is what the client sees.
type AppError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode maps the error type to the HTTP status the handlers answer with.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeAuth:
		return http.StatusUnauthorized
	case ErrTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(operation, msg string) *AppError {
	return &AppError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewAuthError(operation, msg string) *AppError {
	return &AppError{Type: ErrTypeAuth, Operation: operation, Message: msg}
}

func NewConflictError(operation, msg string) *AppError {
	return &AppError{Type: ErrTypeConflict, Operation: operation, Message: msg}
}

func NewConfigError(msg string) *AppError {
	return &AppError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

// NewUpstreamError passes the provider's message through to the client.
func NewUpstreamError(operation string, cause error) *AppError {
	return &AppError{Type: ErrTypeUpstream, Operation: operation, Message: cause.Error(), Cause: cause}
}

// NewStoreError passes the datastore's message through to the client.
func NewStoreError(operation string, cause error) *AppError {
	return &AppError{Type: ErrTypeStore, Operation: operation, Message: cause.Error(), Cause: cause}
}

// AsAppError unwraps err into an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == t
}
