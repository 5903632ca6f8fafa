// Package apperror defines a centralized system for application-specific errors.
// Every failure surfaced to a client passes through an *AppError so that the
// HTTP status code and the response envelope stay consistent across features.
package apperror

import (
	"errors"
	"net/http"
)

// ErrorType classifies an application error. The type, not the message,
// decides the HTTP status code.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// AuthError represents an authentication failure (missing, invalid or
	// expired credential).
	AuthError
	// ForbiddenError represents an authorization failure: the caller is
	// authenticated but does not own the target entity.
	ForbiddenError
	// NotFoundError represents a referenced entity that does not exist.
	NotFoundError
	// ValidationError represents missing or malformed input.
	ValidationError
	// BadRequestError represents a generic bad request (e.g. unreadable body).
	BadRequestError
	// ConflictError represents a uniqueness violation.
	ConflictError
	// InternalError represents an unexpected collaborator failure.
	InternalError
)

// AppError carries a user-facing message, an error type for status mapping,
// and an optional wrapped cause that is never sent to clients.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error satisfies the error interface. The wrapped cause is intentionally
// excluded: diagnostics belong in logs, not in strings that may end up
// client-visible.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError with an explicit type.
func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlying,
	}
}

// NewDatabaseError creates a DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return New(DatabaseError, message, underlying)
}

// NewAuthError creates an AuthError (401).
func NewAuthError(message string, underlying error) *AppError {
	return New(AuthError, message, underlying)
}

// NewForbiddenError creates a ForbiddenError (403).
func NewForbiddenError(message string, underlying error) *AppError {
	return New(ForbiddenError, message, underlying)
}

// NewNotFoundError creates a NotFoundError (404).
func NewNotFoundError(message string, underlying error) *AppError {
	return New(NotFoundError, message, underlying)
}

// NewValidationError creates a ValidationError (400).
func NewValidationError(message string, underlying error) *AppError {
	return New(ValidationError, message, underlying)
}

// NewBadRequestError creates a BadRequestError (400).
func NewBadRequestError(message string, underlying error) *AppError {
	return New(BadRequestError, message, underlying)
}

// NewConflictError creates a ConflictError (409).
func NewConflictError(message string, underlying error) *AppError {
	return New(ConflictError, message, underlying)
}

// NewInternalError creates an InternalError (500).
func NewInternalError(message string, underlying error) *AppError {
	return New(InternalError, message, underlying)
}

// ErrorResponse is the failure envelope returned to API clients:
// {"success": false, "message": "..."}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message" example:"A description of the error"`
}

// ToResponse converts an AppError to the client-facing envelope. Only the
// Message is included, never the wrapped cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Success: false, Message: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError reports whether err is an authentication error.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsForbidden reports whether err is an authorization error.
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError reports whether err is a conflict error.
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
