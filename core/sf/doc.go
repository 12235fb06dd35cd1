// Package sf provides a generic single-flight mechanism for deduplicating
// concurrent function calls with the same key.
//
// If several goroutines call [Singleflight.Do] with the same key at the same
// time, only the first executes the function; the others block until it
// completes and receive the same result. The synthesizer uses it so that
// concurrent first requests for one member produce a single routine.
//
//	group := sf.New[Routine]()
//	r, err := group.Do(key.String(), func() (*Routine, error) {
//	    return compile(plan)
//	})
package sf
