package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/reflx/core/metrics"
	"github.com/codewandler/reflx/core/synth"
)

// synthMetrics implements synth.Metrics using Prometheus.
type synthMetrics struct {
	synthesisDuration prometheus.Histogram
	routinesLoaded    *prometheus.CounterVec
	routinesReused    prometheus.Counter
	failures          *prometheus.CounterVec
	routines          prometheus.Gauge
}

// NewSynthMetrics creates a new Prometheus implementation of synth.Metrics.
func NewSynthMetrics(reg prometheus.Registerer) synth.Metrics {
	m := &synthMetrics{
		synthesisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reflx_synth_duration_seconds",
			Help:    "Time spent synthesizing a routine in seconds",
			Buckets: defaultBuckets,
		}),

		routinesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reflx_synth_routines_loaded_total",
			Help: "Total number of routines synthesized, by backend",
		}, []string{"backend"}),

		routinesReused: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reflx_synth_routines_reused_total",
			Help: "Total number of invokers served by an already loaded routine",
		}),

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reflx_synth_failures_total",
			Help: "Total number of synthesis failures",
		}, []string{"reason"}),

		routines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reflx_synth_routines",
			Help: "Number of loaded routines",
		}),
	}

	reg.MustRegister(
		m.synthesisDuration,
		m.routinesLoaded,
		m.routinesReused,
		m.failures,
		m.routines,
	)

	return m
}

func (m *synthMetrics) SynthesisDuration() metrics.Timer {
	return newTimer(m.synthesisDuration)
}

func (m *synthMetrics) RoutineLoaded(backend string) {
	m.routinesLoaded.WithLabelValues(backend).Inc()
}

func (m *synthMetrics) RoutineReused() {
	m.routinesReused.Inc()
}

func (m *synthMetrics) SynthesisFailed(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}

func (m *synthMetrics) RoutinesLoaded(n int) {
	m.routines.Set(float64(n))
}

var _ synth.Metrics = (*synthMetrics)(nil)
