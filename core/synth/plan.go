package synth

import (
	"errors"
	"reflect"

	"github.com/codewandler/reflx/core/member"
)

// Plan is everything a compiler needs to build a routine for one method.
type Plan struct {
	Key    Key
	Method *member.Method

	Func          reflect.Value
	Static        bool
	Receiver      reflect.Type // *T; nil for static members
	Declaring     reflect.Type
	ValueReceiver bool
	Params        []reflect.Type
	Results       []reflect.Type
	ReturnsError  bool
	Variadic      bool
}

// NewPlan checks that m can be synthesized and captures its shape.
func NewPlan(m *member.Method) (*Plan, error) {
	switch {
	case m.IsAbstract():
		return nil, member.NewError(ErrNotSynthesizable, m.Signature(), errors.New("abstract"))
	case !m.IsPublic():
		return nil, member.NewError(ErrNotSynthesizable, m.Signature(), errors.New("not exported"))
	case !m.Func().IsValid():
		return nil, member.NewError(ErrNotSynthesizable, m.Signature(), errors.New("no implementation"))
	}
	return &Plan{
		Key:           KeyOf(m),
		Method:        m,
		Func:          m.Func(),
		Static:        m.IsStatic(),
		Receiver:      m.Receiver(),
		Declaring:     m.DeclaringType(),
		ValueReceiver: m.ValueReceiver(),
		Params:        m.ParamTypes(),
		Results:       m.Results(),
		ReturnsError:  m.ReturnsError(),
		Variadic:      m.IsVariadic(),
	}, nil
}
