package access

import (
	"fmt"

	"github.com/codewandler/reflx/core/member"
)

// Synthesizer produces invokers backed by specialized routines.
type Synthesizer interface {
	InvokerFor(m *member.Method) (MethodInvoker, error)
}

type synthesizedProvider struct {
	s Synthesizer
}

// Synthesized returns a provider delegating method invocation to s. Any
// synthesis failure, including a member that cannot be synthesized at all,
// is reported as ErrStrategyUnavailable so a chain can fall back.
func Synthesized(s Synthesizer) Provider { return synthesizedProvider{s: s} }

func (synthesizedProvider) Name() string { return StrategySynthesized }

func (synthesizedProvider) FieldAccessor(f *member.Field) (FieldAccessor, error) {
	return nil, unavailable(StrategySynthesized, f, "fields are not supported")
}

func (p synthesizedProvider) MethodInvoker(m *member.Method) (MethodInvoker, error) {
	inv, err := p.s.InvokerFor(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStrategyUnavailable, err)
	}
	return inv, nil
}
