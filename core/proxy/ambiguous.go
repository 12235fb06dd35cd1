package proxy

import (
	"reflect"

	"github.com/codewandler/reflx/core/match"
)

// AmbiguousMethod stands for all methods of a type sharing a name. The
// overload is picked when argument types become known.
type AmbiguousMethod struct {
	class  *ClassProxy
	name   string
	target any
	bound  bool
}

func (a *AmbiguousMethod) Name() string { return a.name }

// WithArgs resolves the overload accepting types.
func (a *AmbiguousMethod) WithArgs(types ...reflect.Type) (*MethodProxy, error) {
	p, err := a.class.Method(a.name, types...)
	if err != nil {
		return nil, err
	}
	if a.bound {
		return p.Bind(a.target), nil
	}
	return p, nil
}

// WithoutArgs resolves the overload taking no arguments.
func (a *AmbiguousMethod) WithoutArgs() (*MethodProxy, error) { return a.WithArgs() }

// Invoke resolves the overload from the dynamic types of args and calls it
// on the bound target. A nil argument has no type; if resolution fails
// with one present the error is member.ErrArgumentTypeIndeterminate.
func (a *AmbiguousMethod) Invoke(args ...any) (any, error) {
	p, err := a.WithArgs(match.TypesOf(args...)...)
	if err != nil {
		return nil, err
	}
	return p.Invoke(args...)
}

// InvokeOn is Invoke on an explicit target.
func (a *AmbiguousMethod) InvokeOn(target any, args ...any) (any, error) {
	p, err := a.class.Method(a.name, match.TypesOf(args...)...)
	if err != nil {
		return nil, err
	}
	return p.InvokeOn(target, args...)
}
