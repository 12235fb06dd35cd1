package proxy

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/codewandler/reflx/core/access"
	"github.com/codewandler/reflx/core/cache"
	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
	"github.com/codewandler/reflx/core/reflector"
)

// ClassProxy is the proxy for a type.
type ClassProxy struct {
	r      *Reflector
	handle reflector.TypeHandle

	fields  *cache.Map[*member.Field, *FieldProxy]
	methods *cache.Map[*member.Method, *MethodProxy]
	ctors   *cache.Map[*member.Constructor, *ConstructorProxy]
	anns    *cache.Map[int, *AnnotationProxy]
}

func newClassProxy(r *Reflector, h reflector.TypeHandle) *ClassProxy {
	return &ClassProxy{
		r:       r,
		handle:  h,
		fields:  cache.NewMap[*member.Field, *FieldProxy](),
		methods: cache.NewMap[*member.Method, *MethodProxy](),
		ctors:   cache.NewMap[*member.Constructor, *ConstructorProxy](),
		anns:    cache.NewMap[int, *AnnotationProxy](),
	}
}

func (c *ClassProxy) Handle() reflector.TypeHandle { return c.handle }
func (c *ClassProxy) Type() reflect.Type           { return c.handle.Type }

// Name is the unqualified type name.
func (c *ClassProxy) Name() string { return c.handle.Simple() }

// FullName is the canonical, package-qualified type name.
func (c *ClassProxy) FullName() string { return c.handle.Name }

func (c *ClassProxy) String() string { return c.handle.Name }

// New creates an instance using the registered no-argument constructor, or
// a zero *T when none is registered. Interface types cannot be
// instantiated.
func (c *ClassProxy) New() (any, error) {
	t := c.handle.Type
	if t.Kind() == reflect.Interface {
		return nil, member.NewError(member.ErrInvocation, c.FullName()+".New()", ErrNotInstantiable)
	}
	if ctor, ok := c.r.host.Constructor(t); ok {
		return c.constructorProxy(ctor).New()
	}
	return reflect.New(t).Interface(), nil
}

// Constructor returns the constructor accepting types.
func (c *ClassProxy) Constructor(types ...reflect.Type) (*ConstructorProxy, error) {
	ctor, err := c.r.resolver.Constructor(c.handle.Type, types...)
	if err != nil {
		return nil, err
	}
	return c.constructorProxy(ctor), nil
}

// NewWith resolves a constructor from the dynamic types of args and calls
// it.
func (c *ClassProxy) NewWith(args ...any) (any, error) {
	ctor, err := c.Constructor(match.TypesOf(args...)...)
	if err != nil {
		return nil, err
	}
	return ctor.New(args...)
}

func (c *ClassProxy) Constructors() []*ConstructorProxy {
	ctors := c.r.host.Constructors(c.handle.Type)
	out := make([]*ConstructorProxy, len(ctors))
	for i, ctor := range ctors {
		out[i] = c.constructorProxy(ctor)
	}
	return out
}

func (c *ClassProxy) constructorProxy(ctor *member.Constructor) *ConstructorProxy {
	p, _ := c.ctors.GetOrCreate(ctor, func() (*ConstructorProxy, error) {
		return &ConstructorProxy{ctor: ctor}, nil
	})
	return p
}

// Field returns the proxy for the field name.
func (c *ClassProxy) Field(name string) (*FieldProxy, error) {
	f, err := c.r.resolver.Field(c.handle.Type, name)
	if err != nil {
		return nil, err
	}
	return c.fieldProxy(f)
}

// Fields returns proxies for all visible fields. Fields no provider can
// serve are skipped.
func (c *ClassProxy) Fields() []*FieldProxy {
	var out []*FieldProxy
	for _, f := range c.r.host.Fields(c.handle.Type) {
		p, err := c.fieldProxy(f)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *ClassProxy) fieldProxy(f *member.Field) (*FieldProxy, error) {
	return c.fields.GetOrCreate(f, func() (*FieldProxy, error) {
		a, err := c.r.provider.FieldAccessor(f)
		if err != nil {
			return nil, err
		}
		return &FieldProxy{field: f, accessor: a}, nil
	})
}

// Method returns the proxy for the method name accepting types.
func (c *ClassProxy) Method(name string, types ...reflect.Type) (*MethodProxy, error) {
	m, err := c.r.resolver.Method(c.handle.Type, name, types...)
	if err != nil {
		return nil, err
	}
	return c.methodProxy(m), nil
}

// Methods returns proxies for all methods, including statics.
func (c *ClassProxy) Methods() []*MethodProxy {
	ms := c.r.host.Methods(c.handle.Type)
	out := make([]*MethodProxy, len(ms))
	for i, m := range ms {
		out[i] = c.methodProxy(m)
	}
	return out
}

// MethodNamed returns a handle for the methods called name whose
// overload is chosen later, from explicit or runtime argument types.
func (c *ClassProxy) MethodNamed(name string) *AmbiguousMethod {
	return &AmbiguousMethod{class: c, name: name}
}

func (c *ClassProxy) methodProxy(m *member.Method) *MethodProxy {
	p, _ := c.methods.GetOrCreate(m, func() (*MethodProxy, error) {
		return newMethodProxy(m, c.r.provider), nil
	})
	return p
}

// Annotation returns the first type annotation with key.
func (c *ClassProxy) Annotation(key string) (*AnnotationProxy, bool) {
	as := c.r.host.TypeAnnotations(c.handle.Type)
	i := slices.IndexFunc(as, func(a member.Annotation) bool { return a.Key == key })
	if i < 0 {
		return nil, false
	}
	return c.annotationProxy(i, as[i]), true
}

// Annotations returns all type annotations.
func (c *ClassProxy) Annotations() []*AnnotationProxy {
	as := c.r.host.TypeAnnotations(c.handle.Type)
	out := make([]*AnnotationProxy, len(as))
	for i, a := range as {
		out[i] = c.annotationProxy(i, a)
	}
	return out
}

func (c *ClassProxy) IsAnnotated(key string) bool {
	_, ok := c.r.host.TypeAnnotations(c.handle.Type).Annotation(key)
	return ok
}

// annotationProxy caches by position. A cached proxy is replaced when the
// annotation at i no longer matches it.
func (c *ClassProxy) annotationProxy(i int, a member.Annotation) *AnnotationProxy {
	p, _ := c.anns.GetOrCreate(i, func() (*AnnotationProxy, error) {
		return &AnnotationProxy{a: a}, nil
	})
	if !sameAnnotation(p.a, a) {
		p = &AnnotationProxy{a: a}
		c.anns.Put(i, p)
	}
	return p
}

func sameAnnotation(a, b member.Annotation) bool {
	return a.Key == b.Key && a.Name == b.Name && slices.Equal(a.Options, b.Options)
}

// Implements reports whether T or *T implements iface.
func (c *ClassProxy) Implements(iface reflect.Type) (bool, error) {
	if iface == nil || iface.Kind() != reflect.Interface {
		return false, fmt.Errorf("%s: %w", reflector.NameOf(iface), ErrNotInterface)
	}
	t := c.handle.Type
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface), nil
}

// Bind returns an object proxy for target, which must be a T or *T.
func (c *ClassProxy) Bind(target any) (*ObjectProxy, error) {
	if target == nil {
		return nil, ErrNilObject
	}
	if reflector.HandleOf(target).Type != c.handle.Type {
		return nil, fmt.Errorf("%w: %T for %s", match.ErrMismatch, target, c.handle.Name)
	}
	return newObjectProxy(c, target), nil
}

// ConstructorProxy is the proxy for a constructor.
type ConstructorProxy struct {
	ctor *member.Constructor
}

func (p *ConstructorProxy) Member() *member.Constructor { return p.ctor }
func (p *ConstructorProxy) Name() string                { return p.ctor.Name() }
func (p *ConstructorProxy) Params() []member.Parameter  { return slices.Clone(p.ctor.Params()) }
func (p *ConstructorProxy) Signature() string           { return p.ctor.Signature() }
func (p *ConstructorProxy) Modifiers() member.Modifiers { return p.ctor.Modifiers() }

func (p *ConstructorProxy) Annotations() []member.Annotation { return p.ctor.Annotations() }

func (p *ConstructorProxy) Annotation(key string) (member.Annotation, bool) {
	return p.ctor.Annotation(key)
}

// New calls the constructor.
func (p *ConstructorProxy) New(args ...any) (any, error) {
	return access.Construct(p.ctor, args...)
}

// AnnotationProxy is the proxy for a type annotation.
type AnnotationProxy struct {
	a member.Annotation
}

func (p *AnnotationProxy) Annotation() member.Annotation { return p.a }
func (p *AnnotationProxy) Key() string                   { return p.a.Key }
func (p *AnnotationProxy) Name() string                  { return p.a.Name }
func (p *AnnotationProxy) Options() []string             { return slices.Clone(p.a.Options) }
func (p *AnnotationProxy) HasOption(opt string) bool     { return p.a.HasOption(opt) }
func (p *AnnotationProxy) String() string                { return p.a.String() }
