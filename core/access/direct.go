package access

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
)

// directAvailable reports, once per process, whether offset-based field
// access works in this runtime.
var directAvailable = sync.OnceValue(probeDirect)

// DirectAvailable reports whether the direct-memory strategy is usable.
func DirectAvailable() bool { return directAvailable() }

type directProvider struct{}

// Direct returns the direct-memory provider. It serves fields at a fixed
// offset and no methods.
func Direct() Provider { return directProvider{} }

func (directProvider) Name() string { return StrategyDirect }

func (directProvider) FieldAccessor(f *member.Field) (FieldAccessor, error) {
	if !directAvailable() {
		return nil, unavailable(StrategyDirect, f, "not supported by runtime")
	}
	off, ok := f.Offset()
	if !ok {
		return nil, unavailable(StrategyDirect, f, "field behind embedded pointer")
	}
	return &directField{f: f, off: off, kind: kindOf(f.Type())}, nil
}

func (directProvider) MethodInvoker(m *member.Method) (MethodInvoker, error) {
	return nil, unavailable(StrategyDirect, m, "methods are not supported")
}

type fastKind uint8

const (
	kindOther fastKind = iota
	kindString
	kindInt
	kindInt64
	kindInt32
	kindUint64
	kindFloat64
	kindBool
)

var fastKinds = map[reflect.Type]fastKind{
	reflect.TypeFor[string]():  kindString,
	reflect.TypeFor[int]():     kindInt,
	reflect.TypeFor[int64]():   kindInt64,
	reflect.TypeFor[int32]():   kindInt32,
	reflect.TypeFor[uint64]():  kindUint64,
	reflect.TypeFor[float64](): kindFloat64,
	reflect.TypeFor[bool]():    kindBool,
}

func kindOf(t reflect.Type) fastKind { return fastKinds[t] }

type directField struct {
	f    *member.Field
	off  uintptr
	kind fastKind
}

func (a *directField) Field() *member.Field { return a.f }
func (a *directField) Strategy() string     { return StrategyDirect }

func (a *directField) base(target any, settable bool) (unsafe.Pointer, error) {
	sv, err := structValue(a.f, target, settable)
	if err != nil {
		return nil, err
	}
	if !sv.CanAddr() {
		cp := reflect.New(sv.Type()).Elem()
		cp.Set(sv)
		sv = cp
	}
	return unsafe.Pointer(sv.UnsafeAddr()), nil
}

func (a *directField) Get(target any) (any, error) {
	p, err := a.base(target, false)
	if err != nil {
		return nil, err
	}
	p = unsafe.Add(p, a.off)
	switch a.kind {
	case kindString:
		return *(*string)(p), nil
	case kindInt:
		return *(*int)(p), nil
	case kindInt64:
		return *(*int64)(p), nil
	case kindInt32:
		return *(*int32)(p), nil
	case kindUint64:
		return *(*uint64)(p), nil
	case kindFloat64:
		return *(*float64)(p), nil
	case kindBool:
		return *(*bool)(p), nil
	}
	return reflect.NewAt(a.f.Type(), p).Elem().Interface(), nil
}

func (a *directField) Set(target any, v any) error {
	p, err := a.base(target, true)
	if err != nil {
		return err
	}
	p = unsafe.Add(p, a.off)
	switch a.kind {
	case kindString:
		if x, ok := v.(string); ok {
			*(*string)(p) = x
			return nil
		}
	case kindInt:
		if x, ok := v.(int); ok {
			*(*int)(p) = x
			return nil
		}
	case kindInt64:
		if x, ok := v.(int64); ok {
			*(*int64)(p) = x
			return nil
		}
	case kindInt32:
		if x, ok := v.(int32); ok {
			*(*int32)(p) = x
			return nil
		}
	case kindUint64:
		if x, ok := v.(uint64); ok {
			*(*uint64)(p) = x
			return nil
		}
	case kindFloat64:
		if x, ok := v.(float64); ok {
			*(*float64)(p) = x
			return nil
		}
	case kindBool:
		if x, ok := v.(bool); ok {
			*(*bool)(p) = x
			return nil
		}
	}
	val, err := match.Coerce(v, a.f.Type())
	if err != nil {
		return invocationError(a.f, err)
	}
	reflect.NewAt(a.f.Type(), p).Elem().Set(val)
	return nil
}

// selfTest writes through offsets computed by reflect and reads the values
// back through reflect.
func selfTest() bool {
	type probe struct {
		A int8
		B string
		C float64
	}
	var x probe
	t := reflect.TypeFor[probe]()
	base := unsafe.Pointer(&x)
	*(*string)(unsafe.Add(base, t.Field(1).Offset)) = "probe"
	*(*float64)(unsafe.Add(base, t.Field(2).Offset)) = 1.5
	return x.B == "probe" && x.C == 1.5
}

var _ FieldAccessor = (*directField)(nil)
