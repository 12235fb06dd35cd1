package access

import (
	"errors"
	"reflect"
	"unsafe"

	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
)

type genericProvider struct{}

// Generic returns the reflect-based provider. It serves every field and
// every method.
func Generic() Provider { return genericProvider{} }

func (genericProvider) Name() string { return StrategyGeneric }

func (genericProvider) FieldAccessor(f *member.Field) (FieldAccessor, error) {
	return &genericField{f: f}, nil
}

func (genericProvider) MethodInvoker(m *member.Method) (MethodInvoker, error) {
	return &genericMethod{m: m}, nil
}

type genericField struct {
	f *member.Field
}

func (a *genericField) Field() *member.Field { return a.f }
func (a *genericField) Strategy() string     { return StrategyGeneric }

// value returns the field value, requesting access to unexported fields
// when the struct is addressable.
func (a *genericField) value(sv reflect.Value) (reflect.Value, error) {
	fv, err := sv.FieldByIndexErr(a.f.Index())
	if err != nil {
		return reflect.Value{}, invocationError(a.f, err)
	}
	if fv.CanInterface() {
		return fv, nil
	}
	if !fv.CanAddr() {
		return reflect.Value{}, member.NewError(member.ErrAccessDenied, a.f.Signature(),
			errors.New("unexported field on non-addressable target"))
	}
	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem(), nil
}

func (a *genericField) Get(target any) (any, error) {
	sv, err := structValue(a.f, target, false)
	if err != nil {
		return nil, err
	}
	fv, err := a.value(sv)
	if err != nil {
		return nil, err
	}
	return fv.Interface(), nil
}

func (a *genericField) Set(target any, v any) (err error) {
	sv, err := structValue(a.f, target, true)
	if err != nil {
		return err
	}
	fv, err := a.value(sv)
	if err != nil {
		return err
	}
	if !fv.CanSet() {
		return member.NewError(member.ErrAccessDenied, a.f.Signature(), errors.New("field not settable"))
	}
	val, err := match.Coerce(v, a.f.Type())
	if err != nil {
		return invocationError(a.f, err)
	}
	defer Recover(a.f, &err)
	fv.Set(val)
	return nil
}

type genericMethod struct {
	m *member.Method
}

func (g *genericMethod) Method() *member.Method { return g.m }
func (g *genericMethod) Strategy() string       { return StrategyGeneric }

func (g *genericMethod) Invoke(target any, args ...any) (any, error) {
	m := g.m
	switch {
	case m.IsStatic():
		return call(m, m.Func(), reflect.Value{}, args, m.IsVariadic())
	case m.IsAbstract():
		if target == nil {
			return nil, invocationError(m, errors.New("nil target"))
		}
		rv := reflect.ValueOf(target)
		if !rv.Type().Implements(m.DeclaringType()) {
			return nil, invocationError(m, match.ErrMismatch)
		}
		return call(m, rv.MethodByName(m.Name()), reflect.Value{}, args, m.IsVariadic())
	}
	recv, err := receiver(m, target)
	if err != nil {
		return nil, err
	}
	return call(m, m.Func(), recv, args, m.IsVariadic())
}

var (
	_ FieldAccessor = (*genericField)(nil)
	_ MethodInvoker = (*genericMethod)(nil)
)
