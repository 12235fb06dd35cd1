package synth

import (
	"fmt"
	"reflect"

	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
	"github.com/codewandler/reflx/core/reflector"
)

// BackendClosure names the compiler assembling routines from closures.
const BackendClosure = "closure"

type closureCompiler struct{}

// Closure returns the compiler that builds a routine from closures
// specialized to the plan's receiver, parameter and result shapes. Common
// static function shapes are served by typed trampolines without
// reflection.
func Closure() Compiler { return closureCompiler{} }

func (closureCompiler) Name() string    { return BackendClosure }
func (closureCompiler) Available() bool { return true }

func (closureCompiler) Compile(p *Plan) (RoutineFunc, error) {
	if p.Static {
		if fn := trampoline(p.Func); fn != nil {
			return fn, nil
		}
	}

	var recv func(any) (reflect.Value, error)
	if !p.Static {
		recv = receiverOf(p)
	}
	conv := make([]func(any) (reflect.Value, error), len(p.Params))
	for i, t := range p.Params {
		conv[i] = converterOf(t)
	}
	results := resultsOf(p)
	call := p.Func.Call
	if p.Variadic {
		call = p.Func.CallSlice
	}

	n := len(conv)
	width := n
	if recv != nil {
		width++
	}
	return func(target any, args []any) (any, error) {
		if err := Arity(args, n); err != nil {
			return nil, err
		}
		in := make([]reflect.Value, 0, width)
		if recv != nil {
			r, err := recv(target)
			if err != nil {
				return nil, err
			}
			in = append(in, r)
		}
		for i, c := range conv {
			v, err := c(args[i])
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}
		return results(call(in))
	}, nil
}

func receiverOf(p *Plan) func(any) (reflect.Value, error) {
	ptr, decl, valueOK := p.Receiver, p.Declaring, p.ValueReceiver
	return func(target any) (reflect.Value, error) {
		if target == nil {
			return reflect.Value{}, errNilTarget
		}
		rv := reflect.ValueOf(target)
		switch rv.Type() {
		case ptr:
			if rv.IsNil() {
				return reflect.Value{}, errNilTarget
			}
			return rv, nil
		case decl:
			if valueOK {
				cp := reflect.New(decl)
				cp.Elem().Set(rv)
				return cp, nil
			}
			return reflect.Value{}, fmt.Errorf("pointer receiver needs *%s target", reflector.NameOf(decl))
		}
		return reflect.Value{}, fmt.Errorf("%w: target %s for %s", match.ErrMismatch, reflector.NameOf(rv.Type()), reflector.NameOf(decl))
	}
}

func converterOf(t reflect.Type) func(any) (reflect.Value, error) {
	if t.Kind() == reflect.Interface {
		return func(a any) (reflect.Value, error) {
			if a == nil {
				return reflect.Zero(t), nil
			}
			if reflect.TypeOf(a).Implements(t) {
				return reflect.ValueOf(a), nil
			}
			return match.Coerce(a, t)
		}
	}
	return func(a any) (reflect.Value, error) {
		if reflect.TypeOf(a) == t {
			return reflect.ValueOf(a), nil
		}
		return match.Coerce(a, t)
	}
}

func resultsOf(p *Plan) func([]reflect.Value) (any, error) {
	n, withErr := len(p.Results), p.ReturnsError
	switch {
	case n == 0:
		return func([]reflect.Value) (any, error) { return nil, nil }
	case n == 1 && !withErr:
		return func(out []reflect.Value) (any, error) { return out[0].Interface(), nil }
	case n == 1:
		return func(out []reflect.Value) (any, error) {
			if out[0].IsNil() {
				return nil, nil
			}
			return nil, out[0].Interface().(error)
		}
	case n == 2 && withErr:
		return func(out []reflect.Value) (any, error) {
			if !out[1].IsNil() {
				return nil, out[1].Interface().(error)
			}
			return out[0].Interface(), nil
		}
	}
	return func(out []reflect.Value) (any, error) { return member.Unpack(out, withErr) }
}
