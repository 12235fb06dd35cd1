// Package metrics defines the backend-neutral instruments used by the
// proxy cache, the access strategies and the synthesizer. Concrete
// backends live in adapters (see adapters/prometheus).
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
type Timer interface {
	ObserveDuration()
}

// TimerFunc creates a Timer, allowing deferred timing:
//
//	defer m.SynthesisDuration(backend).ObserveDuration()
type TimerFunc func() Timer
