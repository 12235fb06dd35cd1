package access

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codewandler/reflx/core/member"
)

// Options configures a Chain.
type Options struct {
	Log     *slog.Logger
	Metrics Metrics
}

type chain struct {
	providers []Provider
	log       *slog.Logger
	metrics   Metrics
}

// Chain tries providers in order. A provider failing with
// ErrStrategyUnavailable is skipped; any other error is returned.
func Chain(providers ...Provider) Provider {
	return NewChain(Options{}, providers...)
}

// NewChain is Chain with options.
func NewChain(opts Options, providers ...Provider) Provider {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}
	return &chain{providers: providers, log: opts.Log, metrics: opts.Metrics}
}

func (c *chain) Name() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *chain) fallback(p Provider, m member.Member, err error) {
	c.metrics.StrategyFallback(p.Name(), m.Kind().String())
	c.log.Debug("access strategy fallback",
		slog.String("strategy", p.Name()),
		slog.String("member", m.Signature()),
		slog.Any("error", err),
	)
}

func (c *chain) FieldAccessor(f *member.Field) (FieldAccessor, error) {
	for _, p := range c.providers {
		a, err := p.FieldAccessor(f)
		if err == nil {
			c.metrics.AccessorCreated(member.KindField.String(), a.Strategy())
			return a, nil
		}
		if !errors.Is(err, ErrStrategyUnavailable) {
			return nil, err
		}
		c.fallback(p, f, err)
	}
	return nil, fmt.Errorf("%w: no provider for %s", ErrStrategyUnavailable, f.Signature())
}

func (c *chain) MethodInvoker(m *member.Method) (MethodInvoker, error) {
	for _, p := range c.providers {
		inv, err := p.MethodInvoker(m)
		if err == nil {
			c.metrics.AccessorCreated(member.KindMethod.String(), inv.Strategy())
			return inv, nil
		}
		if !errors.Is(err, ErrStrategyUnavailable) {
			return nil, err
		}
		c.fallback(p, m, err)
	}
	return nil, fmt.Errorf("%w: no provider for %s", ErrStrategyUnavailable, m.Signature())
}

// Default returns the chain direct, generic. It does not include a
// synthesizer; see Synthesized.
func Default() Provider { return Chain(Direct(), Generic()) }
