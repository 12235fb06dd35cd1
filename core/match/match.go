// Package match decides whether a candidate parameter list accepts a
// requested argument-type shape.
//
// Matching runs in two passes. The first pass applies plain Go
// assignability. The second pass maps every primitive type P to its boxed
// form *P on both sides and retries, so a caller holding *int can reach a
// parameter declared as int and vice versa. A nil entry in the requested
// shape stands for an untyped nil argument; it is accepted only by nullable
// parameters in either pass.
package match

import "reflect"

// Pass identifies which matching pass accepted a candidate.
type Pass uint8

const (
	NoMatch Pass = iota
	Exact
	Boxed
)

func (p Pass) String() string {
	switch p {
	case Exact:
		return "exact"
	case Boxed:
		return "boxed"
	default:
		return "none"
	}
}

// IsPrimitive reports whether t is a basic kind: bool, numeric or string.
func IsPrimitive(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	}
	return false
}

// Nullable reports whether a nil value can be assigned to t.
func Nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// Box maps a primitive type to its boxed form *P. Other types are returned
// unchanged.
func Box(t reflect.Type) reflect.Type {
	if IsPrimitive(t) {
		return reflect.PointerTo(t)
	}
	return t
}

// Unbox maps a boxed primitive *P to P. Other types are returned unchanged.
func Unbox(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer && IsPrimitive(t.Elem()) {
		return t.Elem()
	}
	return t
}

// Assignable is the first pass: every requested type must be assignable to
// the parameter at the same position.
func Assignable(params, requested []reflect.Type) bool {
	if len(params) != len(requested) {
		return false
	}
	for i, p := range params {
		r := requested[i]
		if r == nil {
			if !Nullable(p) {
				return false
			}
			continue
		}
		if !r.AssignableTo(p) {
			return false
		}
	}
	return true
}

// AssignableBoxed is the second pass: Assignable over the boxed forms of
// params and requested.
func AssignableBoxed(params, requested []reflect.Type) bool {
	if len(params) != len(requested) {
		return false
	}
	for i, p := range params {
		r := requested[i]
		if r == nil {
			if !Nullable(p) {
				return false
			}
			continue
		}
		if !Box(r).AssignableTo(Box(p)) {
			return false
		}
	}
	return true
}

// Matches reports whether params accept requested in either pass.
func Matches(params, requested []reflect.Type) Pass {
	if Assignable(params, requested) {
		return Exact
	}
	if AssignableBoxed(params, requested) {
		return Boxed
	}
	return NoMatch
}

// Select returns the index of the first candidate accepting requested. The
// first pass runs over all candidates before the second pass is tried. It
// returns -1 and NoMatch when nothing matches.
func Select(candidates [][]reflect.Type, requested []reflect.Type) (int, Pass) {
	for i, c := range candidates {
		if Assignable(c, requested) {
			return i, Exact
		}
	}
	for i, c := range candidates {
		if AssignableBoxed(c, requested) {
			return i, Boxed
		}
	}
	return -1, NoMatch
}

// TypesOf returns the dynamic types of args. Nil arguments yield nil.
func TypesOf(args ...any) []reflect.Type {
	out := make([]reflect.Type, len(args))
	for i, a := range args {
		out[i] = reflect.TypeOf(a)
	}
	return out
}

// HasNil reports whether any entry of types is nil.
func HasNil(types []reflect.Type) bool {
	for _, t := range types {
		if t == nil {
			return true
		}
	}
	return false
}
