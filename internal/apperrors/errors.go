package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates the operation is not allowed from the resource's current state.
var ErrInvalidState = errors.New("invalid state")

// ErrForbidden indicates a segregation-of-duties or permission violation.
var ErrForbidden = errors.New("forbidden")

// ErrPreconditionFailed indicates a policy gate that was not satisfied.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrConflict indicates a concurrent modification or a uniqueness clash.
var ErrConflict = errors.New("concurrency conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure that should not leak details to callers.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a message alongside the wrapped cause.
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

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewConflictError returns an error matching ErrConflict.
func NewConflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}

// NewValidationFailedError returns an error matching ErrValidation.
func NewValidationFailedError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewInvalidStateError reports the current state and the states in which the operation is allowed.
func NewInvalidStateError(operation string, current string, allowed ...string) error {
	return fmt.Errorf("%w: cannot %s entry in status %s (allowed: %v)", ErrInvalidState, operation, current, allowed)
}
