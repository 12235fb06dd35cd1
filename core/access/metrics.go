package access

// Metrics records accessor creation.
type Metrics interface {
	// AccessorCreated is called when a chain hands out an accessor.
	AccessorCreated(kind, strategy string)
	// StrategyFallback is called when a strategy declines a member.
	StrategyFallback(strategy, kind string)
}

type nopMetrics struct{}

func (nopMetrics) AccessorCreated(string, string)  {}
func (nopMetrics) StrategyFallback(string, string) {}

// NopMetrics returns a Metrics implementation that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }
