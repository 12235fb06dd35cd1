package proxy

import (
	"reflect"
	"slices"
	"sync"

	"github.com/codewandler/reflx/core/access"
	"github.com/codewandler/reflx/core/member"
)

// MethodProxy is the proxy for a method, optionally bound to a target.
type MethodProxy struct {
	method  *member.Method
	invoker func() (access.MethodInvoker, error)
	target  any
	bound   bool
}

func newMethodProxy(m *member.Method, provider access.Provider) *MethodProxy {
	return &MethodProxy{
		method: m,
		invoker: sync.OnceValues(func() (access.MethodInvoker, error) {
			return provider.MethodInvoker(m)
		}),
	}
}

func (p *MethodProxy) Member() *member.Method      { return p.method }
func (p *MethodProxy) Name() string                { return p.method.Name() }
func (p *MethodProxy) Params() []member.Parameter  { return slices.Clone(p.method.Params()) }
func (p *MethodProxy) Results() []reflect.Type     { return slices.Clone(p.method.Results()) }
func (p *MethodProxy) Modifiers() member.Modifiers { return p.method.Modifiers() }
func (p *MethodProxy) Signature() string           { return p.method.Signature() }
func (p *MethodProxy) IsStatic() bool              { return p.method.IsStatic() }

func (p *MethodProxy) Annotations() []member.Annotation { return p.method.Annotations() }

func (p *MethodProxy) Annotation(key string) (member.Annotation, bool) {
	return p.method.Annotation(key)
}

// Invoker returns the invoker, obtaining it from the provider on first use.
// The result, including a failure, is fixed for the proxy's lifetime.
func (p *MethodProxy) Invoker() (access.MethodInvoker, error) { return p.invoker() }

// Strategy names the strategy behind the invoker, obtaining it if needed.
func (p *MethodProxy) Strategy() string {
	inv, err := p.invoker()
	if err != nil {
		return ""
	}
	return inv.Strategy()
}

// Bound reports whether the proxy is bound to a target.
func (p *MethodProxy) Bound() bool { return p.bound }

// Bind returns a proxy for the same method bound to target. The invoker is
// shared.
func (p *MethodProxy) Bind(target any) *MethodProxy {
	return &MethodProxy{method: p.method, invoker: p.invoker, target: target, bound: true}
}

// Invoke calls the method on the bound target. Static methods need no
// target.
func (p *MethodProxy) Invoke(args ...any) (any, error) {
	if !p.bound && !p.method.IsStatic() {
		return nil, member.NewError(member.ErrInvocation, p.method.Signature(), ErrUnbound)
	}
	return p.InvokeOn(p.target, args...)
}

// InvokeOn calls the method on target.
func (p *MethodProxy) InvokeOn(target any, args ...any) (any, error) {
	inv, err := p.invoker()
	if err != nil {
		return nil, err
	}
	return inv.Invoke(target, args...)
}
