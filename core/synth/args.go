package synth

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/reflector"
)

var errNilTarget = errors.New("nil target")

// Arg returns args[i] as a T, unboxing *P into P and boxing P into *P as
// needed. Generated routines use it to extract their arguments.
func Arg[T any](args []any, i int) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, fmt.Errorf("%w: missing argument %d", match.ErrMismatch, i)
	}
	if v, ok := args[i].(T); ok {
		return v, nil
	}
	rv, err := match.Coerce(args[i], reflect.TypeFor[T]())
	if err != nil {
		return zero, fmt.Errorf("argument %d: %w", i, err)
	}
	out, _ := rv.Interface().(T)
	return out, nil
}

// Arity checks that args holds exactly n arguments.
func Arity(args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: want %d arguments, got %d", match.ErrMismatch, n, len(args))
	}
	return nil
}

// Receiver returns target as a *T. A T is accepted and copied when
// valueOK is set, i.e. when the method has a value receiver.
func Receiver[T any](target any, valueOK bool) (*T, error) {
	switch v := target.(type) {
	case *T:
		if v == nil {
			return nil, errNilTarget
		}
		return v, nil
	case T:
		if valueOK {
			return &v, nil
		}
		return nil, fmt.Errorf("pointer receiver needs *%s target", reflector.NameOf(reflect.TypeFor[T]()))
	case nil:
		return nil, errNilTarget
	}
	return nil, fmt.Errorf("%w: target %T for %s", match.ErrMismatch, target, reflector.NameOf(reflect.TypeFor[T]()))
}
