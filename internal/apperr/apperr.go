// Package apperr defines the error type shared by podium packages
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error with a user facing message. Message may
// contain fmt verbs which are filled in by Fmt.
type Error struct {
	// Cause is the underlying error or error kind, if any
	Cause   error
	base    *Error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or the error e was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

// Fmt returns a copy of the error with the message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
		base:    e.root(),
	}
}

// Wrap returns a copy of the error that wraps err. The error kind carried by
// e (if any) stays reachable through errors.Is.
func (e *Error) Wrap(err error) *Error {
	cause := err
	if e.Cause != nil {
		cause = errors.Join(e.Cause, err)
	}

	return &Error{
		Message: e.Message + ": " + err.Error(),
		Cause:   cause,
		base:    e.root(),
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
