package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/reflx/core/access"
)

// accessMetrics implements access.Metrics using Prometheus.
type accessMetrics struct {
	accessorsCreated *prometheus.CounterVec
	fallbacks        *prometheus.CounterVec
}

// NewAccessMetrics creates a new Prometheus implementation of
// access.Metrics.
func NewAccessMetrics(reg prometheus.Registerer) access.Metrics {
	m := &accessMetrics{
		accessorsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reflx_access_accessors_created_total",
			Help: "Total number of accessors handed out, by member kind and strategy",
		}, []string{"kind", "strategy"}),

		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reflx_access_strategy_fallbacks_total",
			Help: "Total number of times a strategy declined a member",
		}, []string{"strategy", "kind"}),
	}

	reg.MustRegister(
		m.accessorsCreated,
		m.fallbacks,
	)

	return m
}

func (m *accessMetrics) AccessorCreated(kind, strategy string) {
	m.accessorsCreated.WithLabelValues(kind, strategy).Inc()
}

func (m *accessMetrics) StrategyFallback(strategy, kind string) {
	m.fallbacks.WithLabelValues(strategy, kind).Inc()
}

var _ access.Metrics = (*accessMetrics)(nil)
