package member

import (
	"go/token"
	"reflect"
)

// Method describes an instance method, an interface method or a static
// function registered under a type.
type Method struct {
	declaring reflect.Type
	name      string
	fn        reflect.Value
	recv      reflect.Type
	valueRecv bool
	params    []Parameter
	results   []reflect.Type
	mods      Modifiers
	anns      AnnotationSet
}

// NewMethod describes m as a method of declaring. For concrete types m must
// come from the method set of *declaring, so its Func takes the pointer
// receiver first. For interface types m comes from the interface itself and
// the method is abstract.
func NewMethod(declaring reflect.Type, m reflect.Method, anns AnnotationSet, paramAnns []AnnotationSet) *Method {
	md := &Method{
		declaring: declaring,
		name:      m.Name,
		mods:      visibility(m.IsExported()),
		anns:      anns,
	}
	ft := m.Type
	skip := 1
	if declaring.Kind() == reflect.Interface {
		md.mods |= Abstract
		md.recv = declaring
		skip = 0
	} else {
		md.fn = m.Func
		md.recv = ft.In(0)
		_, md.valueRecv = declaring.MethodByName(m.Name)
	}
	if ft.IsVariadic() {
		md.mods |= Variadic
	}
	md.params = newParams(fnTypes(ft.NumIn(), ft.In, skip), paramAnns)
	md.results = fnTypes(ft.NumOut(), ft.Out, 0)
	return md
}

// NewStatic describes fn as a static method named name on declaring.
func NewStatic(declaring reflect.Type, name string, fn reflect.Value, anns AnnotationSet, paramAnns []AnnotationSet) *Method {
	ft := fn.Type()
	md := &Method{
		declaring: declaring,
		name:      name,
		fn:        fn,
		mods:      visibility(token.IsExported(name)) | Static,
		anns:      anns,
		params:    newParams(fnTypes(ft.NumIn(), ft.In, 0), paramAnns),
		results:   fnTypes(ft.NumOut(), ft.Out, 0),
	}
	if ft.IsVariadic() {
		md.mods |= Variadic
	}
	return md
}

func (m *Method) member() {}

func (m *Method) Kind() Kind                  { return KindMethod }
func (m *Method) Name() string                { return m.name }
func (m *Method) DeclaringType() reflect.Type { return m.declaring }
func (m *Method) Modifiers() Modifiers        { return m.mods }

// Func is the callable behind the method. Instance methods take their
// receiver as first argument. Abstract methods have no Func.
func (m *Method) Func() reflect.Value { return m.fn }

// Receiver is the receiver type (*T for concrete types, the interface for
// abstract methods). It is nil for static methods.
func (m *Method) Receiver() reflect.Type { return m.recv }

// ValueReceiver reports whether the method is declared on T rather than *T.
func (m *Method) ValueReceiver() bool { return m.valueRecv }

func (m *Method) IsStatic() bool   { return m.mods.Has(Static) }
func (m *Method) IsAbstract() bool { return m.mods.Has(Abstract) }
func (m *Method) IsPublic() bool   { return m.mods.Has(Public) }
func (m *Method) IsVariadic() bool { return m.mods.Has(Variadic) }

func (m *Method) Params() []Parameter        { return m.params }
func (m *Method) ParamTypes() []reflect.Type { return paramTypes(m.params) }
func (m *Method) Results() []reflect.Type    { return m.results }
func (m *Method) ReturnsError() bool         { return returnsError(m.results) }

func (m *Method) Annotations() []Annotation                { return m.anns.Annotations() }
func (m *Method) Annotation(key string) (Annotation, bool) { return m.anns.Annotation(key) }

func (m *Method) Signature() string {
	return signature(m.mods, m.declaring, m.name, m.params, m.results)
}

func (m *Method) String() string { return m.Signature() }

// Unpack converts the raw results of calling m.
func (m *Method) Unpack(out []reflect.Value) (any, error) {
	return Unpack(out, m.ReturnsError())
}

var _ Callable = (*Method)(nil)
