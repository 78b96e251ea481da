package object

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors raised by object-model operations.
type ErrorKind int

const (
	TypeError ErrorKind = iota + 1
	RangeError
	ReferenceError
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case RangeError:
		return "RangeError"
	case ReferenceError:
		return "ReferenceError"
	default:
		return "Error"
	}
}

// Error is a thrown error: a kind plus a message. Native functions
// raise it by returning it as their error result.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError creates an Error of the given kind.
func NewError(
	kind ErrorKind, format string, args ...any,
) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewTypeError creates a TypeError.
func NewTypeError(format string, args ...any) *Error {
	return NewError(TypeError, format, args...)
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Name returns the error kind name, e.g. "TypeError".
func (e *Error) Name() string { return e.Kind.String() }

// IsKind reports whether err wraps an Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
