package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies where an error originated.
type Kind string

const (
	// KindValidation is raised locally before any network call.
	KindValidation Kind = "validation"
	// KindTransport covers failed or unparseable calls to the billing service.
	KindTransport Kind = "transport"
	// KindUnexpected is anything else.
	KindUnexpected   Kind = "unexpected"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
)

// AppError represents an application error with a user-facing message
type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrInvalidPIN     = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Invalid operator PIN"}
	ErrInternalServer = &AppError{Kind: KindUnexpected, Code: http.StatusInternalServerError, Message: "Internal server error"}
)

// NewValidationError creates a local validation error carrying the exact message shown to the operator
func NewValidationError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: message,
	}
}

// NewFieldValidationError creates a validation error listing offending fields
func NewFieldValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewTransportError wraps a billing service failure. status is the upstream
// HTTP status, or 0 when no response was received.
func NewTransportError(status int, message string, cause error) *AppError {
	code := http.StatusBadGateway
	if status >= 400 && status < 500 {
		code = status
	}
	return &AppError{
		Kind:    KindTransport,
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindUnexpected,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Err:     err,
	}
}
