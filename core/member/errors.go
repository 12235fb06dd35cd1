package member

import (
	"errors"
	"fmt"
)

var (
	// ErrResolution is returned when no member matches a requested name and shape.
	ErrResolution = errors.New("member not found")
	// ErrAccessDenied is returned when the runtime refuses access to a member.
	ErrAccessDenied = errors.New("member access denied")
	// ErrInvocation is returned when the underlying call failed or received illegal arguments.
	ErrInvocation = errors.New("invocation failed")
	// ErrSynthesisUnavailable is returned when no routine can be synthesized for a member.
	ErrSynthesisUnavailable = errors.New("synthesis unavailable")
	// ErrArgumentTypeIndeterminate is returned when a nil argument prevents type-based resolution.
	ErrArgumentTypeIndeterminate = errors.New("argument type indeterminate")
)

// Error is a typed member failure. It carries the descriptive signature of
// the member that was attempted and matches both its kind and its cause
// with errors.Is / errors.As.
type Error struct {
	Kind      error
	Signature string
	Cause     error
}

// NewError builds an *Error of the given kind.
func NewError(kind error, signature string, cause error) *Error {
	return &Error{Kind: kind, Signature: signature, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Signature)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Signature, e.Cause)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
