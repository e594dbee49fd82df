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

// ErrForbidden indicates that the acting user is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted for this user")

// ErrIllegalTransition indicates that the requested action violates a document
// lifecycle rule: acting on a non-pending step, cancelling an invoiced order,
// modifying a non-approved order, acting without being an eligible approver.
var ErrIllegalTransition = errors.New("illegal document transition")

// ErrConflict indicates an optimistic concurrency conflict: the document changed
// between the read and the conditional write. Callers may reload and retry.
var ErrConflict = errors.New("document was modified concurrently")

// ErrLedgerInconsistency indicates that a budget ledger update could not be
// applied consistently. The enclosing transaction is aborted entirely so that
// no partial set of item-level ledger updates is ever committed.
var ErrLedgerInconsistency = errors.New("budget ledger inconsistency")

// AppError wraps a lower-level failure with an HTTP-ish status code and a message.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
