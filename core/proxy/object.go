package proxy

import (
	"reflect"

	"github.com/codewandler/reflx/core/cache"
	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
)

// ObjectProxy is a type proxy bound to one instance. Its field and method
// proxies are bound to that instance and cached for the object proxy's
// lifetime.
type ObjectProxy struct {
	class   *ClassProxy
	target  any
	fields  *cache.Map[*member.Field, *FieldProxy]
	methods *cache.Map[*member.Method, *MethodProxy]
}

func newObjectProxy(c *ClassProxy, target any) *ObjectProxy {
	return &ObjectProxy{
		class:   c,
		target:  target,
		fields:  cache.NewMap[*member.Field, *FieldProxy](),
		methods: cache.NewMap[*member.Method, *MethodProxy](),
	}
}

func (o *ObjectProxy) Class() *ClassProxy { return o.class }
func (o *ObjectProxy) Target() any        { return o.target }

func (o *ObjectProxy) bindField(fp *FieldProxy) *FieldProxy {
	p, _ := o.fields.GetOrCreate(fp.field, func() (*FieldProxy, error) {
		return fp.Bind(o.target), nil
	})
	return p
}

func (o *ObjectProxy) bindMethod(mp *MethodProxy) *MethodProxy {
	p, _ := o.methods.GetOrCreate(mp.method, func() (*MethodProxy, error) {
		return mp.Bind(o.target), nil
	})
	return p
}

// Field returns the bound proxy for the field name.
func (o *ObjectProxy) Field(name string) (*FieldProxy, error) {
	fp, err := o.class.Field(name)
	if err != nil {
		return nil, err
	}
	return o.bindField(fp), nil
}

func (o *ObjectProxy) Fields() []*FieldProxy {
	fps := o.class.Fields()
	out := make([]*FieldProxy, len(fps))
	for i, fp := range fps {
		out[i] = o.bindField(fp)
	}
	return out
}

// Method returns the bound proxy for the method name accepting types.
func (o *ObjectProxy) Method(name string, types ...reflect.Type) (*MethodProxy, error) {
	mp, err := o.class.Method(name, types...)
	if err != nil {
		return nil, err
	}
	return o.bindMethod(mp), nil
}

func (o *ObjectProxy) Methods() []*MethodProxy {
	mps := o.class.Methods()
	out := make([]*MethodProxy, len(mps))
	for i, mp := range mps {
		out[i] = o.bindMethod(mp)
	}
	return out
}

// MethodNamed returns an overload handle bound to the object.
func (o *ObjectProxy) MethodNamed(name string) *AmbiguousMethod {
	return &AmbiguousMethod{class: o.class, name: name, target: o.target, bound: true}
}

// Call resolves name from the dynamic types of args and invokes it.
func (o *ObjectProxy) Call(name string, args ...any) (any, error) {
	mp, err := o.Method(name, match.TypesOf(args...)...)
	if err != nil {
		return nil, err
	}
	return mp.Invoke(args...)
}

// Get reads the field name.
func (o *ObjectProxy) Get(name string) (any, error) {
	fp, err := o.Field(name)
	if err != nil {
		return nil, err
	}
	return fp.Get()
}

// Set writes the field name.
func (o *ObjectProxy) Set(name string, v any) error {
	fp, err := o.Field(name)
	if err != nil {
		return err
	}
	return fp.Set(v)
}
