package apperror

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status an application failure maps to.
// Code is 422 for validation, 409 for conflicts, 404 for missing records
// and 503 when a database, printer or file write failed.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause of infrastructure failures.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError creates a validation error for a single field.
func NewFieldError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewInfrastructureError wraps a persistence, printer or file-system failure.
func NewInfrastructureError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Message: message,
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool { return hasCode(err, http.StatusUnprocessableEntity) }

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool { return hasCode(err, http.StatusConflict) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, http.StatusNotFound) }

// IsInfrastructure reports whether err is an InfrastructureError.
func IsInfrastructure(err error) bool { return hasCode(err, http.StatusServiceUnavailable) }

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
