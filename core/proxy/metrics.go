package proxy

// Metrics instruments the proxy cache.
type Metrics interface {
	// TypeRequested is called for every type proxy request. cached reports
	// whether the permanent cache served it.
	TypeRequested(cached bool)
	// TypePromoted is called when a type proxy enters the permanent cache.
	TypePromoted()
	// PermanentSize reports the size of the permanent cache.
	PermanentSize(n int)
}

type nopMetrics struct{}

func (nopMetrics) TypeRequested(bool) {}
func (nopMetrics) TypePromoted()      {}
func (nopMetrics) PermanentSize(int)  {}

// NopMetrics returns a Metrics implementation that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }
