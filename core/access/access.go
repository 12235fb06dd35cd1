package access

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
	"github.com/codewandler/reflx/core/reflector"
)

// ErrStrategyUnavailable is returned by a provider that cannot serve a
// member. Chains recover from it by trying the next provider.
var ErrStrategyUnavailable = errors.New("access strategy unavailable")

// Strategy names.
const (
	StrategyGeneric     = "generic"
	StrategyDirect      = "direct"
	StrategySynthesized = "synthesized"
)

// FieldAccessor reads and writes one field.
type FieldAccessor interface {
	// Get reads the field from target, a T or *T.
	Get(target any) (any, error)
	// Set writes v to the field of target, which must be a non-nil *T.
	Set(target any, v any) error
	Field() *member.Field
	Strategy() string
}

// MethodInvoker calls one method.
type MethodInvoker interface {
	// Invoke calls the method on target with args. target is ignored for
	// static methods.
	Invoke(target any, args ...any) (any, error)
	Method() *member.Method
	Strategy() string
}

// Provider creates accessors for one strategy.
type Provider interface {
	Name() string
	FieldAccessor(f *member.Field) (FieldAccessor, error)
	MethodInvoker(m *member.Method) (MethodInvoker, error)
}

func unavailable(strategy string, m member.Member, reason string) error {
	return fmt.Errorf("%w: %s for %s: %s", ErrStrategyUnavailable, strategy, m.Signature(), reason)
}

func invocationError(m member.Member, cause error) error {
	return member.NewError(member.ErrInvocation, m.Signature(), cause)
}

// Recover converts a panic raised while calling m into an invocation error
// stored in *err. Use as: defer access.Recover(m, &err).
func Recover(m member.Member, err *error) {
	if r := recover(); r != nil {
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("panic: %v", r)
		}
		*err = invocationError(m, cause)
	}
}

// structValue returns the struct value addressed by target. It is
// addressable when target is a pointer. settable requires a pointer.
func structValue(f member.Member, target any, settable bool) (reflect.Value, error) {
	declaring := f.DeclaringType()
	if target == nil {
		return reflect.Value{}, invocationError(f, errors.New("nil target"))
	}
	rv := reflect.ValueOf(target)
	switch {
	case rv.Kind() == reflect.Pointer && rv.Type().Elem() == declaring:
		if rv.IsNil() {
			return reflect.Value{}, invocationError(f, errors.New("nil target"))
		}
		return rv.Elem(), nil
	case rv.Type() == declaring:
		if settable {
			return reflect.Value{}, invocationError(f, fmt.Errorf("target must be *%s", reflector.NameOf(declaring)))
		}
		return rv, nil
	}
	return reflect.Value{}, invocationError(f, fmt.Errorf("%w: target %s for %s",
		match.ErrMismatch, reflector.NameOf(rv.Type()), reflector.NameOf(declaring)))
}

// receiver returns the value to pass as receiver of the instance method m.
func receiver(m *member.Method, target any) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, invocationError(m, errors.New("nil target"))
	}
	rv := reflect.ValueOf(target)
	switch rv.Type() {
	case m.Receiver():
		if rv.IsNil() {
			return reflect.Value{}, invocationError(m, errors.New("nil target"))
		}
		return rv, nil
	case m.DeclaringType():
		if !m.ValueReceiver() {
			return reflect.Value{}, invocationError(m, fmt.Errorf("pointer receiver needs *%s target",
				reflector.NameOf(m.DeclaringType())))
		}
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		return p, nil
	}
	return reflect.Value{}, invocationError(m, fmt.Errorf("%w: target %s for %s",
		match.ErrMismatch, reflector.NameOf(rv.Type()), reflector.NameOf(m.DeclaringType())))
}

// call invokes fn with args coerced to the parameters of c, unpacking the
// results. Errors returned by the callee and panics are invocation errors.
func call(c member.Callable, fn reflect.Value, recv reflect.Value, args []any, variadic bool) (out any, err error) {
	in, err := match.CoerceArgs(args, c.ParamTypes())
	if err != nil {
		return nil, invocationError(c, err)
	}
	if recv.IsValid() {
		in = append([]reflect.Value{recv}, in...)
	}

	defer Recover(c, &err)
	var res []reflect.Value
	if variadic {
		res = fn.CallSlice(in)
	} else {
		res = fn.Call(in)
	}
	out, err = member.Unpack(res, c.ReturnsError())
	if err != nil {
		return nil, invocationError(c, err)
	}
	return out, nil
}

// Construct calls constructor c with args.
func Construct(c *member.Constructor, args ...any) (any, error) {
	return call(c, c.Func(), reflect.Value{}, args, c.IsVariadic())
}
