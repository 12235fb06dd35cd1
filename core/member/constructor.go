package member

import (
	"go/token"
	"reflect"
)

// Constructor describes a factory function registered for a type. It
// returns T or *T, optionally followed by an error.
type Constructor struct {
	declaring reflect.Type
	name      string
	fn        reflect.Value
	params    []Parameter
	results   []reflect.Type
	mods      Modifiers
	anns      AnnotationSet
}

// NewConstructor describes fn as a constructor of declaring.
func NewConstructor(declaring reflect.Type, name string, fn reflect.Value, anns AnnotationSet, paramAnns []AnnotationSet) *Constructor {
	ft := fn.Type()
	c := &Constructor{
		declaring: declaring,
		name:      name,
		fn:        fn,
		mods:      visibility(token.IsExported(name)),
		anns:      anns,
		params:    newParams(fnTypes(ft.NumIn(), ft.In, 0), paramAnns),
		results:   fnTypes(ft.NumOut(), ft.Out, 0),
	}
	if ft.IsVariadic() {
		c.mods |= Variadic
	}
	return c
}

func (c *Constructor) member() {}

func (c *Constructor) Kind() Kind                  { return KindConstructor }
func (c *Constructor) Name() string                { return c.name }
func (c *Constructor) DeclaringType() reflect.Type { return c.declaring }
func (c *Constructor) Modifiers() Modifiers        { return c.mods }
func (c *Constructor) Func() reflect.Value         { return c.fn }
func (c *Constructor) IsVariadic() bool            { return c.mods.Has(Variadic) }

func (c *Constructor) Params() []Parameter        { return c.params }
func (c *Constructor) ParamTypes() []reflect.Type { return paramTypes(c.params) }
func (c *Constructor) Results() []reflect.Type    { return c.results }
func (c *Constructor) ReturnsError() bool         { return returnsError(c.results) }

func (c *Constructor) Annotations() []Annotation                { return c.anns.Annotations() }
func (c *Constructor) Annotation(key string) (Annotation, bool) { return c.anns.Annotation(key) }

func (c *Constructor) Signature() string {
	return signature(c.mods, c.declaring, c.name, c.params, c.results)
}

func (c *Constructor) String() string { return c.Signature() }

var _ Callable = (*Constructor)(nil)
