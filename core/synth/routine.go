package synth

import (
	"errors"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/reflx/core/access"
	"github.com/codewandler/reflx/core/member"
)

// Origin records where and when a routine was loaded. Two invokers backed
// by the same routine report the same origin.
type Origin struct {
	ID       string
	Key      Key
	Backend  string
	LoadedAt time.Time
}

// Routine is a loaded, callable unit for one method implementation.
type Routine struct {
	origin Origin
	sig    string
	method *member.Method
	fn     RoutineFunc
}

func newRoutine(p *Plan, backend string, fn RoutineFunc) *Routine {
	return &Routine{
		origin: Origin{
			ID:       gonanoid.Must(),
			Key:      p.Key,
			Backend:  backend,
			LoadedAt: time.Now(),
		},
		sig:    p.Method.Signature(),
		method: p.Method,
		fn:     fn,
	}
}

func (r *Routine) Origin() Origin { return r.origin }

// Call runs the routine. Errors and panics are reported as invocation
// errors carrying the method signature.
func (r *Routine) Call(target any, args []any) (out any, err error) {
	defer access.Recover(r.method, &err)
	out, err = r.fn(target, args)
	if err != nil && !errors.Is(err, member.ErrInvocation) {
		return nil, member.NewError(member.ErrInvocation, r.sig, err)
	}
	return out, err
}

// Invoker is a lightweight MethodInvoker over a shared routine.
type Invoker struct {
	routine *Routine
	method  *member.Method
}

func (i *Invoker) Invoke(target any, args ...any) (any, error) {
	return i.routine.Call(target, args)
}

func (i *Invoker) Method() *member.Method { return i.method }
func (i *Invoker) Strategy() string       { return access.StrategySynthesized }
func (i *Invoker) Origin() Origin         { return i.routine.origin }
func (i *Invoker) Routine() *Routine      { return i.routine }

var _ access.MethodInvoker = (*Invoker)(nil)
