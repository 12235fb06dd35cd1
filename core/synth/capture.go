package synth

import (
	"log/slog"
	"runtime"
	"slices"
	"strings"
)

// Unit describes the routines s has loaded for types of the package at
// path as a source unit, the same file reflgen writes for those members.
// Generated routines, statics backed by closures and members whose types
// cannot be named in source are left out. Types declared inside functions
// share a name with nothing at package level and should not be captured.
func (s *Synthesizer) Unit(path, name string) *Unit {
	s.mu.RLock()
	loaded := make([]*Routine, 0, len(s.routines))
	for _, r := range s.routines {
		loaded = append(loaded, r)
	}
	s.mu.RUnlock()

	u := &Unit{Path: path, Name: name}
	seen := make(map[string]bool)
	for _, r := range loaded {
		if r.origin.Backend == BackendTable {
			continue
		}
		p, err := NewPlan(r.method)
		if err != nil || p.Declaring.PkgPath() != path {
			continue
		}
		spec, ok := SpecOf(p, funcName(p, path))
		if !ok {
			continue
		}
		key := spec.Key().String()
		if seen[key] {
			continue
		}
		seen[key] = true
		u.Routines = append(u.Routines, spec)
	}
	slices.SortFunc(u.Routines, func(a, b RoutineSpec) int {
		return strings.Compare(a.Key().String(), b.Key().String())
	})
	s.log.Debug("unit captured",
		slog.String("path", path),
		slog.Int("routines", len(u.Routines)),
	)
	return u
}

// funcName is the package-level name of a static's function, or "" when
// the function is a closure or lives in another package.
func funcName(p *Plan, path string) string {
	if !p.Static {
		return ""
	}
	f := runtime.FuncForPC(p.Func.Pointer())
	if f == nil {
		return ""
	}
	name, ok := strings.CutPrefix(f.Name(), path+".")
	if !ok || strings.Contains(name, ".") {
		return ""
	}
	return name
}
