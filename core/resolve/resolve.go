// Package resolve finds the member that best matches a requested name and
// argument-type shape.
//
// Resolution tries an exact lookup first. When that fails it scans the
// declared members of the type, keeps those with the requested name and
// parameter count, and hands them to the two-pass matcher. The first
// candidate accepted, in declaration order, wins. Requests without
// arguments look the member up directly and never reach the matcher.
package resolve

import (
	"log/slog"
	"reflect"

	"github.com/codewandler/reflx/core/host"
	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
)

// Options configures a Resolver.
type Options struct {
	Host host.Introspector
	Log  *slog.Logger
}

// Resolver resolves methods, constructors and fields. It owns no cache.
type Resolver struct {
	host host.Introspector
	log  *slog.Logger
}

// New creates a Resolver. Host defaults to host.Default().
func New(opts Options) *Resolver {
	if opts.Host == nil {
		opts.Host = host.Default()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Resolver{host: opts.Host, log: opts.Log.With(slog.String("component", "resolver"))}
}

// Host returns the introspector the resolver queries.
func (r *Resolver) Host() host.Introspector { return r.host }

func notFound(t reflect.Type, name string, types []reflect.Type) error {
	kind := member.ErrResolution
	if match.HasNil(types) {
		kind = member.ErrArgumentTypeIndeterminate
	}
	return member.NewError(kind, member.Describe(t, name, types), nil)
}

// Method resolves the method name of t accepting types. Nil entries in
// types stand for untyped nil arguments. When nothing matches and one of the
// requested types is nil, the error is ErrArgumentTypeIndeterminate rather
// than ErrResolution.
func (r *Resolver) Method(t reflect.Type, name string, types ...reflect.Type) (*member.Method, error) {
	if len(types) == 0 {
		if m, ok := r.host.Method(t, name); ok {
			return m, nil
		}
		return nil, notFound(t, name, nil)
	}
	if !match.HasNil(types) {
		if m, ok := r.host.Method(t, name, types...); ok {
			return m, nil
		}
	}

	var (
		candidates []*member.Method
		shapes     [][]reflect.Type
	)
	for _, m := range r.host.Methods(t) {
		if m.Name() != name || len(m.Params()) != len(types) {
			continue
		}
		candidates = append(candidates, m)
		shapes = append(shapes, m.ParamTypes())
	}
	i, pass := match.Select(shapes, types)
	if i < 0 {
		return nil, notFound(t, name, types)
	}
	r.log.Debug("method resolved",
		slog.String("signature", candidates[i].Signature()),
		slog.String("pass", pass.String()),
		slog.Int("candidates", len(candidates)),
	)
	return candidates[i], nil
}

// Constructor resolves the constructor of t accepting types.
func (r *Resolver) Constructor(t reflect.Type, types ...reflect.Type) (*member.Constructor, error) {
	if !match.HasNil(types) {
		if c, ok := r.host.Constructor(t, types...); ok {
			return c, nil
		}
	}
	if len(types) == 0 {
		return nil, notFound(t, "New", nil)
	}

	var (
		candidates []*member.Constructor
		shapes     [][]reflect.Type
	)
	for _, c := range r.host.Constructors(t) {
		if len(c.Params()) != len(types) {
			continue
		}
		candidates = append(candidates, c)
		shapes = append(shapes, c.ParamTypes())
	}
	i, pass := match.Select(shapes, types)
	if i < 0 {
		return nil, notFound(t, "New", types)
	}
	r.log.Debug("constructor resolved",
		slog.String("signature", candidates[i].Signature()),
		slog.String("pass", pass.String()),
	)
	return candidates[i], nil
}

// Field resolves the field name of t.
func (r *Resolver) Field(t reflect.Type, name string) (*member.Field, error) {
	if f, ok := r.host.Field(t, name); ok {
		return f, nil
	}
	return nil, member.NewError(member.ErrResolution, member.Describe(t, name, nil), nil)
}

// MethodFor resolves using the dynamic types of args.
func (r *Resolver) MethodFor(t reflect.Type, name string, args ...any) (*member.Method, error) {
	return r.Method(t, name, match.TypesOf(args...)...)
}

// ConstructorFor resolves using the dynamic types of args.
func (r *Resolver) ConstructorFor(t reflect.Type, args ...any) (*member.Constructor, error) {
	return r.Constructor(t, match.TypesOf(args...)...)
}
