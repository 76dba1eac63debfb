// Package corerr defines the error kinds used at the core engine boundary,
// per the distinction between recoverable (IllegalMove, IllegalOperation),
// boundary-only (Format) and fatal-precondition (NotFound, InvalidArgument)
// errors.
package corerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind uint8

const (
	// Format indicates a logical snapshot could not be decoded.
	Format Kind = iota + 1
	// IllegalMove indicates a PlayerMove could not be translated to a legal Move.
	IllegalMove
	// IllegalOperation indicates a timeline action was attempted in an unsupported state.
	IllegalOperation
	// InvalidArgument indicates programmer misuse of a geometric or board primitive.
	InvalidArgument
	// NotFound indicates an internal invariant was violated (e.g. capturing an inactive piece).
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Format:
		return "format"
	case IllegalMove:
		return "illegal_move"
	case IllegalOperation:
		return "illegal_operation"
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a typed error carrying a Kind for dispatch at the core boundary.
type Error struct {
	Kind   Kind
	Reason string
	Err    error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error of the given kind.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error of the given kind, wrapping an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
