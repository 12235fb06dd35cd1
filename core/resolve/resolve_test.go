package resolve

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/reflx/core/host"
	"github.com/codewandler/reflx/core/member"
)

type Calc struct{}

func (Calc) Zero() int { return 0 }

func (Calc) Describe(r io.Reader) string {
	b, _ := io.ReadAll(r)
	return string(b)
}

var (
	tCalc   = reflect.TypeFor[Calc]()
	tInt    = reflect.TypeFor[int]()
	tPtrInt = reflect.TypeFor[*int]()
	tAny    = reflect.TypeFor[any]()
	tString = reflect.TypeFor[string]()
)

// newResolver registers the overloads F(int, any) and F(*int, any).
func newResolver(t *testing.T) *Resolver {
	t.Helper()
	reg := host.NewRegistry()
	require.NoError(t, reg.RegisterStatic(tCalc, "F", func(n int, v any) string { return fmt.Sprint("int:", n, v) }))
	require.NoError(t, reg.RegisterStatic(tCalc, "F", func(n *int, v any) string { return fmt.Sprint("ptr:", *n, v) }))
	require.NoError(t, reg.RegisterConstructor(func() Calc { return Calc{} }))
	require.NoError(t, reg.RegisterConstructor(func(n *int) *Calc { return &Calc{} }))
	return New(Options{Host: reg})
}

func TestMethod_ExactOverload(t *testing.T) {
	r := newResolver(t)

	m, err := r.Method(tCalc, "F", tPtrInt, tAny)
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{tPtrInt, tAny}, m.ParamTypes())

	m, err = r.Method(tCalc, "F", tInt, tAny)
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{tInt, tAny}, m.ParamTypes())
}

func TestMethod_FirstPassAssignable(t *testing.T) {
	r := newResolver(t)

	m, err := r.Method(tCalc, "F", tPtrInt, tString)
	require.NoError(t, err)
	assert.Equal(t, tPtrInt, m.ParamTypes()[0])

	m, err = r.Method(tCalc, "Describe", reflect.TypeFor[*strings.Reader]())
	require.NoError(t, err)
	assert.Equal(t, "Describe", m.Name())
}

func TestMethod_SecondPassBoxing(t *testing.T) {
	reg := host.NewRegistry()
	require.NoError(t, reg.RegisterStatic(tCalc, "G", func(n *int, v any) int { return *n }))
	r := New(Options{Host: reg})

	m, err := r.Method(tCalc, "G", tInt, tString)
	require.NoError(t, err)
	assert.Equal(t, tPtrInt, m.ParamTypes()[0])
}

func TestMethod_NoArgs(t *testing.T) {
	r := newResolver(t)

	m, err := r.Method(tCalc, "Zero")
	require.NoError(t, err)
	assert.Empty(t, m.Params())

	_, err = r.Method(tCalc, "F")
	assert.ErrorIs(t, err, member.ErrResolution)
}

func TestMethod_NotFound(t *testing.T) {
	r := newResolver(t)

	_, err := r.Method(tCalc, "F", tString, tAny)
	require.ErrorIs(t, err, member.ErrResolution)
	var me *member.Error
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Signature, "Calc.F(string, any)")

	_, err = r.Method(tCalc, "F", tInt)
	assert.ErrorIs(t, err, member.ErrResolution)

	_, err = r.Method(tCalc, "Nope", tInt)
	assert.ErrorIs(t, err, member.ErrResolution)
}

func TestMethod_NilArguments(t *testing.T) {
	r := newResolver(t)

	m, err := r.Method(tCalc, "F", tPtrInt, nil)
	require.NoError(t, err)
	assert.Equal(t, tPtrInt, m.ParamTypes()[0])

	m, err = r.Method(tCalc, "F", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, tPtrInt, m.ParamTypes()[0], "only the nullable overload accepts nil")

	_, err = r.Method(tCalc, "Zero", nil)
	assert.ErrorIs(t, err, member.ErrArgumentTypeIndeterminate)
}

func TestMethodFor(t *testing.T) {
	r := newResolver(t)
	m, err := r.MethodFor(tCalc, "F", 1, "x")
	require.NoError(t, err)
	assert.Equal(t, tInt, m.ParamTypes()[0])
}

func TestConstructor(t *testing.T) {
	r := newResolver(t)

	c, err := r.Constructor(tCalc)
	require.NoError(t, err)
	assert.Empty(t, c.Params())

	c, err = r.Constructor(tCalc, tInt)
	require.NoError(t, err, "boxed pass reaches the *int constructor")
	assert.Equal(t, tPtrInt, c.ParamTypes()[0])

	c, err = r.ConstructorFor(tCalc, nil)
	require.NoError(t, err)
	assert.Equal(t, tPtrInt, c.ParamTypes()[0])

	_, err = r.Constructor(tCalc, tString)
	assert.ErrorIs(t, err, member.ErrResolution)

	_, err = New(Options{Host: host.NewRegistry()}).Constructor(tCalc)
	assert.ErrorIs(t, err, member.ErrResolution)
}

func TestField(t *testing.T) {
	type point struct{ X, Y int }
	r := New(Options{Host: host.NewRegistry()})

	f, err := r.Field(reflect.TypeFor[point](), "Y")
	require.NoError(t, err)
	assert.Equal(t, "Y", f.Name())

	_, err = r.Field(reflect.TypeFor[point](), "Z")
	assert.ErrorIs(t, err, member.ErrResolution)
}
