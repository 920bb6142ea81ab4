package errors

import (
	"net/http"

	"usersync/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches copies made by WithDetails against the predefined value
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Invalid request data",
		"",
	)

	ErrNoFieldsToUpdate = NewBaseError(
		http.StatusBadRequest,
		"NO_UPDATE_DATA",
		"No fields to update",
		"",
	)

	ErrNoSyncFields = NewBaseError(
		http.StatusBadRequest,
		"NO_SYNC_FIELDS",
		"No valid fields to synchronize",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrUpstreamUnreachable = NewBaseError(
		http.StatusBadGateway,
		"SERVICE_UNREACHABLE",
		"Upstream service unreachable",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// PoisonMessageError marks a queued event that can never be applied and must be
// rejected without redelivery.
type PoisonMessageError struct {
	err    error
	reason string
}

// NewPoisonMessageError wraps the cause of a rejected event
func NewPoisonMessageError(err error, reason string) *PoisonMessageError {
	return &PoisonMessageError{err: err, reason: reason}
}

// Error implements the error interface
func (e *PoisonMessageError) Error() string {
	if e.err == nil {
		return "poison message: " + e.reason
	}

	return "poison message: " + e.reason + ": " + e.err.Error()
}

// Unwrap exposes the parse or store error
func (e *PoisonMessageError) Unwrap() error {
	return e.err
}

// Reason returns the short rejection reason
func (e *PoisonMessageError) Reason() string {
	return e.reason
}

// IsPoisonMessage reports whether err marks an event for rejection
func IsPoisonMessage(err error) bool {
	var pm *PoisonMessageError

	return errors.As(err, &pm)
}
