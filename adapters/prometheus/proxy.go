package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/reflx/core/proxy"
)

// proxyMetrics implements proxy.Metrics using Prometheus.
type proxyMetrics struct {
	typeRequests  *prometheus.CounterVec
	typePromoted  prometheus.Counter
	permanentSize prometheus.Gauge
}

// NewProxyMetrics creates a new Prometheus implementation of proxy.Metrics.
func NewProxyMetrics(reg prometheus.Registerer) proxy.Metrics {
	m := &proxyMetrics{
		typeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reflx_proxy_type_requests_total",
			Help: "Total number of type proxy requests",
		}, []string{"cached"}),

		typePromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reflx_proxy_type_promotions_total",
			Help: "Total number of type proxies promoted into the permanent cache",
		}),

		permanentSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reflx_proxy_permanent_size",
			Help: "Number of type proxies in the permanent cache",
		}),
	}

	reg.MustRegister(
		m.typeRequests,
		m.typePromoted,
		m.permanentSize,
	)

	return m
}

func (m *proxyMetrics) TypeRequested(cached bool) {
	m.typeRequests.WithLabelValues(boolToStr(cached)).Inc()
}

func (m *proxyMetrics) TypePromoted() {
	m.typePromoted.Inc()
}

func (m *proxyMetrics) PermanentSize(n int) {
	m.permanentSize.Set(float64(n))
}

var _ proxy.Metrics = (*proxyMetrics)(nil)
