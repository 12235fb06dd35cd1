// Package prometheus provides Prometheus implementations of the metrics
// interfaces of the proxy cache, the access strategies and the
// synthesizer.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/reflx/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Synthesis is much faster than a network call; buckets start at 10µs.
var defaultBuckets = []float64{
	.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1,
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// AllMetrics holds Prometheus implementations for every instrumented
// component.
type AllMetrics struct {
	Proxy  *proxyMetrics
	Access *accessMetrics
	Synth  *synthMetrics
}

// NewAllMetrics creates and registers all metrics on reg.
func NewAllMetrics(reg prometheus.Registerer) *AllMetrics {
	return &AllMetrics{
		Proxy:  NewProxyMetrics(reg).(*proxyMetrics),
		Access: NewAccessMetrics(reg).(*accessMetrics),
		Synth:  NewSynthMetrics(reg).(*synthMetrics),
	}
}
