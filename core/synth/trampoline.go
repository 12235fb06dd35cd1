package synth

import "reflect"

// trampoline returns a reflection-free routine for a handful of common
// static function shapes, or nil.
func trampoline(fn reflect.Value) RoutineFunc {
	switch f := fn.Interface().(type) {
	case func():
		return func(_ any, args []any) (any, error) {
			if err := Arity(args, 0); err != nil {
				return nil, err
			}
			f()
			return nil, nil
		}
	case func() error:
		return func(_ any, args []any) (any, error) {
			if err := Arity(args, 0); err != nil {
				return nil, err
			}
			return nil, f()
		}
	case func() string:
		return nullary(f)
	case func() int:
		return nullary(f)
	case func() bool:
		return nullary(f)
	case func() any:
		return nullary(f)
	case func(string) string:
		return unary(f)
	case func(int) int:
		return unary(f)
	case func(any) any:
		return unary(f)
	case func(string) error:
		return func(_ any, args []any) (any, error) {
			if err := Arity(args, 1); err != nil {
				return nil, err
			}
			a0, err := Arg[string](args, 0)
			if err != nil {
				return nil, err
			}
			return nil, f(a0)
		}
	case func(string) (string, error):
		return unaryErr(f)
	case func(string) (int, error):
		return unaryErr(f)
	case func(int, int) int:
		return binary(f)
	case func(string, string) string:
		return binary(f)
	}
	return nil
}

func nullary[R any](f func() R) RoutineFunc {
	return func(_ any, args []any) (any, error) {
		if err := Arity(args, 0); err != nil {
			return nil, err
		}
		return f(), nil
	}
}

func unary[A, R any](f func(A) R) RoutineFunc {
	return func(_ any, args []any) (any, error) {
		if err := Arity(args, 1); err != nil {
			return nil, err
		}
		a0, err := Arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		return f(a0), nil
	}
}

func unaryErr[A, R any](f func(A) (R, error)) RoutineFunc {
	return func(_ any, args []any) (any, error) {
		if err := Arity(args, 1); err != nil {
			return nil, err
		}
		a0, err := Arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		r, err := f(a0)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

func binary[A, B, R any](f func(A, B) R) RoutineFunc {
	return func(_ any, args []any) (any, error) {
		if err := Arity(args, 2); err != nil {
			return nil, err
		}
		a0, err := Arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		a1, err := Arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		return f(a0, a1), nil
	}
}
