package synth

import "github.com/codewandler/reflx/core/metrics"

// Metrics instruments the synthesizer.
type Metrics interface {
	SynthesisDuration() metrics.Timer
	RoutineLoaded(backend string)
	RoutineReused()
	SynthesisFailed(reason string)
	RoutinesLoaded(n int)
}

type nopMetrics struct{}

func (nopMetrics) SynthesisDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) RoutineLoaded(string)             {}
func (nopMetrics) RoutineReused()                   {}
func (nopMetrics) SynthesisFailed(string)           {}
func (nopMetrics) RoutinesLoaded(int)               {}

// NopMetrics returns a Metrics implementation that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }
