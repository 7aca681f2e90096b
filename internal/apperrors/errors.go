package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced resource (account, customer) does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates a structurally invalid request: non-positive amount,
// self-transfer, malformed identifier. Rejected before any storage access.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with current state,
// e.g. deleting a customer that still owns accounts.
var ErrConflict = errors.New("resource conflict")

// ErrInsufficientBalance indicates a debit or transfer would push an account
// below its balance floor. The operation is aborted with no state change.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInvariantViolation indicates a defensive balance check failed after the
// coordinator had already validated the write. Unreachable unless there is a
// bug upstream; always logged and aborted.
var ErrInvariantViolation = errors.New("balance invariant violation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside the wrapped cause. Storage
// failures surface as AppError with code 500; they abort the operation and
// are safe to retry from the caller side.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
