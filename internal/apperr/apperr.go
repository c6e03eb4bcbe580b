package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrState      = errors.New("invalid state")
)

// Error is a domain error carrying a human-readable message and one of the kinds above.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Validation reports bad input shape, ordering or amounts.
func Validation(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// NotFound reports a referenced record that does not exist.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// State reports an operation that is invalid for the record's current status.
func State(format string, args ...any) error {
	return newError(ErrState, format, args...)
}
