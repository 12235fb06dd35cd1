package host

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/fatih/structtag"

	"github.com/codewandler/reflx/core/member"
	"github.com/codewandler/reflx/core/reflector"
)

var errorType = reflect.TypeFor[error]()

// Registry is a reflect-backed Introspector with registered constructors,
// static methods and annotations. Descriptors are built lazily per type and
// rebuilt after a registration touching that type. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*entry
	extras  map[reflect.Type]*extras
}

type entry struct {
	fields  []*member.Field
	byName  map[string]*member.Field
	methods []*member.Method
	ctors   []*member.Constructor
	anns    member.AnnotationSet
}

type registration struct {
	fn   reflect.Value
	opts regOptions

	// static is built once so its identity survives entry rebuilds.
	static *member.Method
}

type extras struct {
	ctors      []registration
	statics    []registration
	anns       member.AnnotationSet
	methodOpts map[string]regOptions
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[reflect.Type]*entry),
		extras:  make(map[reflect.Type]*extras),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

func unwrap(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// RegisterConstructor registers fn as a constructor of the type it returns.
// fn must return T or *T, optionally followed by an error. The default name
// is "New".
func (r *Registry) RegisterConstructor(fn any, opts ...Option) error {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fmt.Errorf("register constructor: %w", ErrNotFunc)
	}
	ft := fv.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return fmt.Errorf("register constructor %s: %w", ft, ErrBadConstructor)
	}
	out := ft.Out(0)
	if out.Kind() == reflect.Pointer && out.Elem().Kind() == reflect.Pointer {
		return fmt.Errorf("register constructor %s: %w", ft, ErrBadConstructor)
	}
	if out.Kind() == reflect.Interface {
		return fmt.Errorf("register constructor %s: %w", ft, ErrBadConstructor)
	}

	t := unwrap(out)
	r.mu.Lock()
	defer r.mu.Unlock()
	x := r.extrasFor(t)
	x.ctors = append(x.ctors, registration{fn: fv, opts: applyOptions("New", opts)})
	delete(r.entries, t)
	return nil
}

// RegisterStatic registers fn as a static method of t named name.
func (r *Registry) RegisterStatic(t reflect.Type, name string, fn any, opts ...Option) error {
	if t == nil {
		return fmt.Errorf("register static %s: %w", name, ErrNilType)
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fmt.Errorf("register static %s: %w", name, ErrNotFunc)
	}

	t = unwrap(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	x := r.extrasFor(t)
	o := applyOptions(name, opts)
	x.statics = append(x.statics, registration{
		fn:     fv,
		opts:   o,
		static: member.NewStatic(t, o.name, fv, o.anns, o.paramAnns),
	})
	delete(r.entries, t)
	return nil
}

// Annotate attaches annotations to t.
func (r *Registry) Annotate(t reflect.Type, as ...member.Annotation) {
	t = unwrap(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	x := r.extrasFor(t)
	x.anns = append(x.anns, as...)
	delete(r.entries, t)
}

// AnnotateMethod attaches method and parameter annotations to the instance
// method name of t. Only WithAnnotations and WithParamAnnotations apply.
func (r *Registry) AnnotateMethod(t reflect.Type, name string, opts ...Option) {
	t = unwrap(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	x := r.extrasFor(t)
	cur := x.methodOpts[name]
	cur.name = name
	for _, opt := range opts {
		opt(&cur)
	}
	x.methodOpts[name] = cur
	delete(r.entries, t)
}

// MustRegisterConstructor is like RegisterConstructor on the default
// registry but panics on error.
func MustRegisterConstructor(fn any, opts ...Option) {
	if err := defaultRegistry.RegisterConstructor(fn, opts...); err != nil {
		panic(err)
	}
}

// MustRegisterStatic is like RegisterStatic on the default registry but
// panics on error.
func MustRegisterStatic(t reflect.Type, name string, fn any, opts ...Option) {
	if err := defaultRegistry.RegisterStatic(t, name, fn, opts...); err != nil {
		panic(err)
	}
}

// Annotate attaches annotations to t in the default registry.
func Annotate(t reflect.Type, as ...member.Annotation) { defaultRegistry.Annotate(t, as...) }

func (r *Registry) extrasFor(t reflect.Type) *extras {
	x, ok := r.extras[t]
	if !ok {
		x = &extras{methodOpts: make(map[string]regOptions)}
		r.extras[t] = x
	}
	return x
}

func (r *Registry) entry(t reflect.Type) *entry {
	t = unwrap(t)
	if t == nil {
		return &entry{}
	}

	r.mu.RLock()
	e, ok := r.entries[t]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[t]; ok {
		return e
	}
	e = build(t, r.extras[t])
	r.entries[t] = e
	return e
}

func build(t reflect.Type, x *extras) *entry {
	if x == nil {
		x = &extras{}
	}
	e := &entry{byName: make(map[string]*member.Field), anns: slices.Clone(x.anns)}

	if t.Kind() == reflect.Struct {
		for _, sf := range reflect.VisibleFields(t) {
			if sf.Name == "_" {
				continue
			}
			f := member.NewField(t, sf, tagAnnotations(sf.Tag))
			e.fields = append(e.fields, f)
			e.byName[sf.Name] = f
		}
	}

	methodOf := func(m reflect.Method) *member.Method {
		o := x.methodOpts[m.Name]
		return member.NewMethod(t, m, o.anns, o.paramAnns)
	}
	if t.Kind() == reflect.Interface {
		for i := range t.NumMethod() {
			e.methods = append(e.methods, methodOf(t.Method(i)))
		}
	} else {
		pt := reflect.PointerTo(t)
		for i := range pt.NumMethod() {
			e.methods = append(e.methods, methodOf(pt.Method(i)))
		}
	}
	for _, s := range x.statics {
		e.methods = append(e.methods, s.static)
	}

	for _, c := range x.ctors {
		e.ctors = append(e.ctors, member.NewConstructor(t, c.opts.name, c.fn, c.opts.anns, c.opts.paramAnns))
	}
	return e
}

func tagAnnotations(tag reflect.StructTag) member.AnnotationSet {
	if tag == "" {
		return nil
	}
	tags, err := structtag.Parse(string(tag))
	if err != nil {
		return nil
	}
	out := make(member.AnnotationSet, 0, tags.Len())
	for _, tg := range tags.Tags() {
		out = append(out, member.Annotation{Key: tg.Key, Name: tg.Name, Options: tg.Options})
	}
	return out
}

func (r *Registry) Fields(t reflect.Type) []*member.Field {
	return slices.Clone(r.entry(t).fields)
}

func (r *Registry) Field(t reflect.Type, name string) (*member.Field, bool) {
	f, ok := r.entry(t).byName[name]
	return f, ok
}

func (r *Registry) Methods(t reflect.Type) []*member.Method {
	return slices.Clone(r.entry(t).methods)
}

func (r *Registry) Method(t reflect.Type, name string, params ...reflect.Type) (*member.Method, bool) {
	for _, m := range r.entry(t).methods {
		if m.Name() == name && slices.Equal(m.ParamTypes(), params) {
			return m, true
		}
	}
	return nil, false
}

func (r *Registry) Constructors(t reflect.Type) []*member.Constructor {
	return slices.Clone(r.entry(t).ctors)
}

func (r *Registry) Constructor(t reflect.Type, params ...reflect.Type) (*member.Constructor, bool) {
	for _, c := range r.entry(t).ctors {
		if slices.Equal(c.ParamTypes(), params) {
			return c, true
		}
	}
	return nil, false
}

func (r *Registry) TypeAnnotations(t reflect.Type) member.AnnotationSet {
	return slices.Clone(r.entry(t).anns)
}

// Describe returns a short summary of t's members, for diagnostics.
func (r *Registry) Describe(t reflect.Type) string {
	e := r.entry(t)
	return fmt.Sprintf("%s: %d fields, %d methods, %d constructors",
		reflector.NameOf(unwrap(t)), len(e.fields), len(e.methods), len(e.ctors))
}

var _ Introspector = (*Registry)(nil)
