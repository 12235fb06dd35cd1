package match

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/codewandler/reflx/core/reflector"
)

// ErrMismatch is returned when an argument cannot be converted to a
// parameter type.
var ErrMismatch = errors.New("argument type mismatch")

// Coerce converts v into a value of type t, following the same rules as
// the matcher: plain assignability, boxing P into *P and unboxing *P into
// P. A nil v yields the zero value of a nullable t.
func Coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		if Nullable(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil for %s", ErrMismatch, reflector.NameOf(t))
	}
	return CoerceValue(reflect.ValueOf(v), t)
}

// CoerceValue is Coerce for a reflect.Value.
func CoerceValue(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	vt := rv.Type()
	if vt.AssignableTo(t) {
		if vt == t {
			return rv, nil
		}
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, nil
	}
	// *P -> P
	if vt.Kind() == reflect.Pointer && IsPrimitive(vt.Elem()) && vt.Elem().AssignableTo(t) {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s for %s", ErrMismatch, reflector.NameOf(vt), reflector.NameOf(t))
		}
		return CoerceValue(rv.Elem(), t)
	}
	// P -> *P
	if t.Kind() == reflect.Pointer && IsPrimitive(vt) && vt.AssignableTo(t.Elem()) {
		p := reflect.New(t.Elem())
		p.Elem().Set(rv)
		return p, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s for %s", ErrMismatch, reflector.NameOf(vt), reflector.NameOf(t))
}

// CoerceArgs converts args to the parameter types in order.
func CoerceArgs(args []any, params []reflect.Type) ([]reflect.Value, error) {
	if len(args) != len(params) {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrMismatch, len(params), len(args))
	}
	out := make([]reflect.Value, len(args))
	for i, a := range args {
		v, err := Coerce(a, params[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
