package proxy

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/codewandler/reflx/core/access"
	"github.com/codewandler/reflx/core/cache"
	"github.com/codewandler/reflx/core/host"
	"github.com/codewandler/reflx/core/member"
	"github.com/codewandler/reflx/core/reflector"
	"github.com/codewandler/reflx/core/resolve"
	"github.com/codewandler/reflx/core/synth"
)

const (
	// DefaultThreshold is the request count at which a type proxy is
	// promoted into the permanent cache. The threshold-th request itself
	// returns the cached proxy, one request earlier than a strict "more than
	// threshold" rule.
	DefaultThreshold = 20
	// DefaultCounterCapacity bounds the number of types counted at once.
	DefaultCounterCapacity = 1024
)

// Options configures a Reflector.
type Options struct {
	// Host enumerates members. Defaults to host.Default().
	Host host.Introspector
	// Provider creates accessors. Defaults to synthesized, direct, generic.
	Provider access.Provider
	// Threshold is the request count that promotes a type. Defaults to
	// DefaultThreshold.
	Threshold int
	// CounterCapacity bounds the access counters. Defaults to
	// DefaultCounterCapacity.
	CounterCapacity int
	Log             *slog.Logger
	Metrics         Metrics
}

// Reflector is the proxy cache.
type Reflector struct {
	host      host.Introspector
	resolver  *resolve.Resolver
	provider  access.Provider
	threshold int
	log       *slog.Logger
	metrics   Metrics

	mu        sync.RWMutex
	permanent map[reflect.Type]*ClassProxy
	counters  *cache.LRU[reflect.Type, int]
}

// DefaultProvider is the provider chain used when Options.Provider is nil.
func DefaultProvider() access.Provider {
	return access.Chain(synth.Default().Provider(), access.Direct(), access.Generic())
}

// New creates a Reflector.
func New(opts Options) *Reflector {
	if opts.Host == nil {
		opts.Host = host.Default()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Provider == nil {
		opts.Provider = DefaultProvider()
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.CounterCapacity <= 0 {
		opts.CounterCapacity = DefaultCounterCapacity
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}
	log := opts.Log.With(slog.String("component", "proxy"))
	return &Reflector{
		host:      opts.Host,
		resolver:  resolve.New(resolve.Options{Host: opts.Host, Log: opts.Log}),
		provider:  opts.Provider,
		threshold: opts.Threshold,
		log:       log,
		metrics:   opts.Metrics,
		permanent: make(map[reflect.Type]*ClassProxy),
		counters:  cache.NewLRU[reflect.Type, int](cache.LRUOpts{Size: opts.CounterCapacity}),
	}
}

var (
	defaultMu        sync.RWMutex
	defaultReflector *Reflector
)

// Default returns the process-wide Reflector, creating it on first use.
func Default() *Reflector {
	defaultMu.RLock()
	r := defaultReflector
	defaultMu.RUnlock()
	if r != nil {
		return r
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReflector == nil {
		defaultReflector = New(Options{})
	}
	return defaultReflector
}

// SetDefault replaces the process-wide Reflector.
func SetDefault(r *Reflector) {
	defaultMu.Lock()
	defaultReflector = r
	defaultMu.Unlock()
}

func (r *Reflector) Resolver() *resolve.Resolver { return r.resolver }
func (r *Reflector) Provider() access.Provider   { return r.provider }
func (r *Reflector) Threshold() int              { return r.threshold }

// Type returns the proxy for t. *T and T share one proxy. It returns nil
// for a nil type.
func (r *Reflector) Type(t reflect.Type) *ClassProxy {
	h := reflector.HandleForType(t)
	if !h.Valid() {
		return nil
	}

	r.mu.RLock()
	p, ok := r.permanent[h.Type]
	r.mu.RUnlock()
	if ok {
		r.metrics.TypeRequested(true)
		return p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.permanent[h.Type]; ok {
		r.metrics.TypeRequested(true)
		return p
	}
	r.metrics.TypeRequested(false)

	p = newClassProxy(r, h)
	n, _ := r.counters.Get(h.Type)
	n++
	if n < r.threshold {
		r.counters.Put(h.Type, n)
		return p
	}
	r.counters.Delete(h.Type)
	r.permanent[h.Type] = p
	r.metrics.TypePromoted()
	r.metrics.PermanentSize(len(r.permanent))
	r.log.Debug("type proxy promoted",
		slog.String("type", h.Name),
		slog.Int("requests", n),
	)
	return p
}

// TypeOf returns the proxy for the dynamic type of x.
func (r *Reflector) TypeOf(x any) *ClassProxy { return r.Type(reflect.TypeOf(x)) }

// For returns the proxy for T from r.
func For[T any](r *Reflector) *ClassProxy { return r.Type(reflect.TypeFor[T]()) }

// Object returns a fresh proxy bound to obj. obj should be a pointer for
// fields to be settable.
func (r *Reflector) Object(obj any) (*ObjectProxy, error) {
	if obj == nil {
		return nil, ErrNilObject
	}
	return newObjectProxy(r.TypeOf(obj), obj), nil
}

// Instance creates a new instance of t and returns a proxy bound to it.
func (r *Reflector) Instance(t reflect.Type) (*ObjectProxy, error) {
	c := r.Type(t)
	if c == nil {
		return nil, fmt.Errorf("instance: %w", ErrNotInstantiable)
	}
	obj, err := c.New()
	if err != nil {
		return nil, err
	}
	return newObjectProxy(c, obj), nil
}

// FieldOf returns the cached proxy for a field descriptor.
func (r *Reflector) FieldOf(f *member.Field) (*FieldProxy, error) {
	return r.Type(f.DeclaringType()).fieldProxy(f)
}

// MethodOf returns the cached proxy for a method descriptor.
func (r *Reflector) MethodOf(m *member.Method) *MethodProxy {
	return r.Type(m.DeclaringType()).methodProxy(m)
}

// Cached reports whether t has been promoted.
func (r *Reflector) Cached(t reflect.Type) bool {
	h := reflector.HandleForType(t)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.permanent[h.Type]
	return ok
}

// Count returns the number of requests recorded for t while not promoted.
func (r *Reflector) Count(t reflect.Type) int {
	n, _ := r.counters.Get(reflector.HandleForType(t).Type)
	return n
}

// Len returns the number of promoted type proxies.
func (r *Reflector) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.permanent)
}

// Reset clears the permanent cache and all counters.
func (r *Reflector) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.permanent = make(map[reflect.Type]*ClassProxy)
	r.counters.Clear()
	r.metrics.PermanentSize(0)
}
