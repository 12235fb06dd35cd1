package synth

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// BackendTable names the compiler serving build-time generated routines.
const BackendTable = "table"

// Generated is a build-time generated routine as registered from init.
type Generated struct {
	// Key is the string form of the routine's Key.
	Key string
	// Type is the declaring type.
	Type reflect.Type
	// Func is the function a static routine calls. Nil for instance methods.
	Func   any
	Invoke RoutineFunc
}

func (g Generated) matches(p *Plan) bool {
	if !p.Static {
		return g.Func == nil
	}
	fv := reflect.ValueOf(g.Func)
	return fv.Kind() == reflect.Func && p.Func.Kind() == reflect.Func && fv.Pointer() == p.Func.Pointer()
}

// memberOf drops the declaring type from a key string. Generated routines
// are found by type identity first, since a main package is named "main"
// in a binary but by its import path in its test binary.
func memberOf(key string) string {
	rest, static := strings.CutPrefix(key, "static ")
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return key
	}
	m := rest[strings.LastIndexByte(rest[:open], '.')+1:]
	if static {
		m = "static " + m
	}
	return m
}

var (
	tableMu sync.RWMutex
	table   = make(map[reflect.Type]map[string][]Generated)
	tableN  int
)

// Register adds a build-time generated routine. Generated code calls it from
// init. Routines are looked up by declaring type and then by the member part
// of the key. The first registration for the same routine wins.
func Register(g Generated) {
	if g.Invoke == nil || g.Type == nil {
		panic(fmt.Sprintf("synth: incomplete registration for %q", g.Key))
	}
	if g.Func != nil && reflect.TypeOf(g.Func).Kind() != reflect.Func {
		panic(fmt.Sprintf("synth: registration for %q: Func is %T", g.Key, g.Func))
	}
	tableMu.Lock()
	defer tableMu.Unlock()
	byMember, ok := table[g.Type]
	if !ok {
		byMember = make(map[string][]Generated)
		table[g.Type] = byMember
	}
	m := memberOf(g.Key)
	for _, have := range byMember[m] {
		if samePointer(have.Func, g.Func) {
			return
		}
	}
	byMember[m] = append(byMember[m], g)
	tableN++
}

func samePointer(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Registered reports how many generated routines are registered.
func Registered() int {
	tableMu.RLock()
	defer tableMu.RUnlock()
	return tableN
}

func lookupGenerated(p *Plan) (RoutineFunc, bool) {
	tableMu.RLock()
	defer tableMu.RUnlock()
	for _, g := range table[p.Declaring][memberOf(p.Key.String())] {
		if g.matches(p) {
			return g.Invoke, true
		}
	}
	return nil, false
}

type tableCompiler struct{}

// Table returns the compiler backed by routines passed to Register.
func Table() Compiler { return tableCompiler{} }

func (tableCompiler) Name() string { return BackendTable }

func (tableCompiler) Available() bool { return Registered() > 0 }

func (tableCompiler) Compile(p *Plan) (RoutineFunc, error) {
	if fn, ok := lookupGenerated(p); ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %s not generated", ErrNoSpecialization, p.Key)
}
