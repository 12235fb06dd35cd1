package synth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"sync"

	"github.com/codewandler/reflx/core/access"
	"github.com/codewandler/reflx/core/member"
	"github.com/codewandler/reflx/core/sf"
)

// EnvDisable switches synthesis off for the process when set to "off".
const EnvDisable = "REFLX_SYNTH"

// envProbe is evaluated once per process.
var envProbe = sync.OnceValue(func() bool {
	return os.Getenv(EnvDisable) != "off"
})

// Options configures a Synthesizer.
type Options struct {
	// Compilers are tried in order. Defaults to Table, Closure.
	Compilers []Compiler
	// Probe reports whether synthesis is possible at all. It is evaluated
	// once. Defaults to an environment check of EnvDisable.
	Probe   func() bool
	Log     *slog.Logger
	Metrics Metrics
}

// Synthesizer produces invokers backed by one routine per implementation.
type Synthesizer struct {
	compilers []Compiler
	available func() bool
	log       *slog.Logger
	metrics   Metrics

	mu       sync.RWMutex
	routines map[routineID]*Routine
	group    *sf.Singleflight[Routine]
}

// routineID names the code a routine runs. An instance method is fixed by
// its declaring type and name. A static is fixed by its descriptor, since
// two registries may bind different functions to the same name.
type routineID struct {
	declaring reflect.Type
	name      string
	static    *member.Method
}

func idOf(m *member.Method) routineID {
	id := routineID{declaring: m.DeclaringType(), name: m.Name()}
	if m.IsStatic() {
		id.static = m
	}
	return id
}

func (id routineID) String() string {
	return fmt.Sprintf("%p.%s.%p", id.declaring, id.name, id.static)
}

// New creates a Synthesizer.
func New(opts Options) *Synthesizer {
	if opts.Compilers == nil {
		opts.Compilers = []Compiler{Table(), Closure()}
	}
	if opts.Probe == nil {
		opts.Probe = envProbe
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}
	s := &Synthesizer{
		compilers: opts.Compilers,
		log:       opts.Log.With(slog.String("component", "synth")),
		metrics:   opts.Metrics,
		routines:  make(map[routineID]*Routine),
		group:     sf.New[Routine](),
	}
	probe, compilers := opts.Probe, opts.Compilers
	s.available = sync.OnceValue(func() bool {
		if !probe() {
			return false
		}
		for _, c := range compilers {
			if c.Available() {
				return true
			}
		}
		return false
	})
	return s
}

var defaultSynth = sync.OnceValue(func() *Synthesizer { return New(Options{}) })

// Default returns the process-wide synthesizer.
func Default() *Synthesizer { return defaultSynth() }

// Available reports whether this synthesizer can produce routines. The
// answer is computed on first use and then fixed.
func (s *Synthesizer) Available() bool { return s.available() }

// InvokerFor returns an invoker for m backed by the routine for m,
// synthesizing and registering it first if needed.
func (s *Synthesizer) InvokerFor(m *member.Method) (access.MethodInvoker, error) {
	r, err := s.RoutineFor(m)
	if err != nil {
		return nil, err
	}
	return &Invoker{routine: r, method: m}, nil
}

// RoutineFor returns the routine for m. Methods with the same Key but a
// different implementation get separate routines.
func (s *Synthesizer) RoutineFor(m *member.Method) (*Routine, error) {
	if !s.Available() {
		s.metrics.SynthesisFailed("disabled")
		return nil, member.NewError(member.ErrSynthesisUnavailable, m.Signature(), ErrDisabled)
	}
	plan, err := NewPlan(m)
	if err != nil {
		s.metrics.SynthesisFailed("precondition")
		return nil, err
	}

	id := idOf(m)
	if r, ok := s.lookup(id); ok {
		s.metrics.RoutineReused()
		return r, nil
	}

	r, _, err := s.group.Do(id.String(), func() (*Routine, error) {
		if r, ok := s.lookup(id); ok {
			return r, nil
		}
		r, err := s.synthesize(plan)
		if err != nil {
			return nil, err
		}
		return s.register(id, r), nil
	})
	if err != nil {
		s.metrics.SynthesisFailed("compile")
		s.log.Warn("synthesis failed",
			slog.String("key", plan.Key.String()),
			slog.Any("error", err),
		)
		return nil, member.NewError(member.ErrSynthesisUnavailable, m.Signature(), err)
	}
	return r, nil
}

func (s *Synthesizer) synthesize(p *Plan) (*Routine, error) {
	defer s.metrics.SynthesisDuration().ObserveDuration()

	var errs []error
	for _, c := range s.compilers {
		fn, err := c.Compile(p)
		if err != nil {
			if !errors.Is(err, ErrNoSpecialization) {
				errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			}
			continue
		}
		r := newRoutine(p, c.Name(), fn)
		s.metrics.RoutineLoaded(c.Name())
		s.log.Debug("routine loaded",
			slog.String("key", p.Key.String()),
			slog.String("backend", c.Name()),
			slog.String("origin", r.origin.ID),
		)
		return r, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoSpecialization, p.Key)
	}
	return nil, errors.Join(errs...)
}

// register stores r under id unless a routine is already there, in which
// case the existing one is returned.
func (s *Synthesizer) register(id routineID, r *Routine) *Routine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.routines[id]; ok {
		return existing
	}
	s.routines[id] = r
	s.metrics.RoutinesLoaded(len(s.routines))
	return r
}

func (s *Synthesizer) lookup(id routineID) (*Routine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.routines[id]
	return r, ok
}

// Lookup returns the loaded routine for m, if any.
func (s *Synthesizer) Lookup(m *member.Method) (*Routine, bool) { return s.lookup(idOf(m)) }

// Len returns the number of loaded routines.
func (s *Synthesizer) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.routines)
}

// Reset drops every loaded routine. Meant for tests.
func (s *Synthesizer) Reset() {
	s.mu.Lock()
	s.routines = make(map[routineID]*Routine)
	s.mu.Unlock()
	s.metrics.RoutinesLoaded(0)
}

// Provider returns an access provider backed by s.
func (s *Synthesizer) Provider() access.Provider { return access.Synthesized(s) }

var _ access.Synthesizer = (*Synthesizer)(nil)
