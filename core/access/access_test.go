package access_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/reflx/core/access"
	"github.com/codewandler/reflx/core/host"
	"github.com/codewandler/reflx/core/match"
	"github.com/codewandler/reflx/core/member"
)

type Embedded struct {
	Depth int
}

type Linked struct {
	Note string
}

type Doc struct {
	X      string
	Count  int
	Ratio  float64
	Tags   []string
	secret string
	Embedded
	*Linked
}

func (d Doc) Title() string { return strings.ToUpper(d.X) }

func (d *Doc) Append(s string) int {
	d.X += s
	return len(d.X)
}

func (d *Doc) Join(sep string, parts ...string) string { return strings.Join(parts, sep) }

func (d *Doc) Check(n int) (bool, error) {
	if n < 0 {
		return false, errors.New("negative")
	}
	return n > 0, nil
}

func (d *Doc) Explode() { panic("kaboom") }

type Titled interface{ Title() string }

var (
	reg  = host.NewRegistry()
	tDoc = reflect.TypeFor[Doc]()
)

func init() {
	_ = reg.RegisterStatic(tDoc, "Sum", func(a, b int) int { return a + b })
}

func field(t *testing.T, name string) *member.Field {
	t.Helper()
	f, ok := reg.Field(tDoc, name)
	require.True(t, ok, name)
	return f
}

func method(t *testing.T, typ reflect.Type, name string, params ...reflect.Type) *member.Method {
	t.Helper()
	m, ok := reg.Method(typ, name, params...)
	require.True(t, ok, name)
	return m
}

func TestStrategiesShareStorage(t *testing.T) {
	f := field(t, "X")
	direct, err := access.Direct().FieldAccessor(f)
	require.NoError(t, err)
	generic, err := access.Generic().FieldAccessor(f)
	require.NoError(t, err)

	d := &Doc{X: "hello"}
	for _, a := range []access.FieldAccessor{direct, generic} {
		v, err := a.Get(d)
		require.NoError(t, err)
		assert.Equal(t, "hello", v, a.Strategy())
	}

	require.NoError(t, direct.Set(d, "world"))
	v, err := generic.Get(d)
	require.NoError(t, err)
	assert.Equal(t, "world", v)

	require.NoError(t, generic.Set(d, "again"))
	v, err = direct.Get(d)
	require.NoError(t, err)
	assert.Equal(t, "again", v)
	assert.Equal(t, "again", d.X)
}

func TestFieldAccessors(t *testing.T) {
	for _, p := range []access.Provider{access.Direct(), access.Generic()} {
		t.Run(p.Name(), func(t *testing.T) {
			d := &Doc{Count: 3, Ratio: 0.5, Embedded: Embedded{Depth: 2}}

			for name, want := range map[string]any{"Count": 3, "Ratio": 0.5, "Depth": 2, "Tags": []string(nil)} {
				a, err := p.FieldAccessor(field(t, name))
				require.NoError(t, err)
				got, err := a.Get(d)
				require.NoError(t, err)
				assert.Equal(t, want, got, name)
			}

			count, _ := p.FieldAccessor(field(t, "Count"))
			n := 9
			require.NoError(t, count.Set(d, &n), "boxed values are unboxed")
			assert.Equal(t, 9, d.Count)

			got, err := count.Get(*d)
			require.NoError(t, err, "value targets can be read")
			assert.Equal(t, 9, got)

			assert.ErrorIs(t, count.Set(*d, 1), member.ErrInvocation, "value targets cannot be written")
			assert.ErrorIs(t, count.Set(d, "x"), match.ErrMismatch)
			_, err = count.Get(42)
			assert.ErrorIs(t, err, member.ErrInvocation)
			_, err = count.Get((*Doc)(nil))
			assert.ErrorIs(t, err, member.ErrInvocation)

			tags, _ := p.FieldAccessor(field(t, "Tags"))
			require.NoError(t, tags.Set(d, []string{"a"}))
			require.NoError(t, tags.Set(d, nil))
			assert.Nil(t, d.Tags)
		})
	}
}

func TestGenericUnexportedField(t *testing.T) {
	a, err := access.Generic().FieldAccessor(field(t, "secret"))
	require.NoError(t, err)

	d := &Doc{}
	require.NoError(t, a.Set(d, "s3"))
	v, err := a.Get(d)
	require.NoError(t, err)
	assert.Equal(t, "s3", v)

	_, err = a.Get(Doc{})
	assert.ErrorIs(t, err, member.ErrAccessDenied)
}

func TestDirectDeclinesEmbeddedPointer(t *testing.T) {
	f := field(t, "Note")
	_, err := access.Direct().FieldAccessor(f)
	assert.ErrorIs(t, err, access.ErrStrategyUnavailable)

	a, err := access.Default().FieldAccessor(f)
	require.NoError(t, err)
	assert.Equal(t, access.StrategyGeneric, a.Strategy())

	_, err = a.Get(&Doc{})
	assert.ErrorIs(t, err, member.ErrInvocation, "nil embedded pointer")

	v, err := a.Get(&Doc{Linked: &Linked{Note: "n"}})
	require.NoError(t, err)
	assert.Equal(t, "n", v)
}

func TestDirectUnavailable(t *testing.T) {
	restore := access.SetDirectAvailable(false)
	defer restore()

	_, err := access.Direct().FieldAccessor(field(t, "X"))
	assert.ErrorIs(t, err, access.ErrStrategyUnavailable)

	a, err := access.Default().FieldAccessor(field(t, "X"))
	require.NoError(t, err)
	assert.Equal(t, access.StrategyGeneric, a.Strategy())
}

func TestGenericMethods(t *testing.T) {
	g := access.Generic()
	tString := reflect.TypeFor[string]()

	title, _ := g.MethodInvoker(method(t, tDoc, "Title"))
	v, err := title.Invoke(Doc{X: "go"})
	require.NoError(t, err)
	assert.Equal(t, "GO", v, "value targets reach value receivers")
	v, err = title.Invoke(&Doc{X: "ptr"})
	require.NoError(t, err)
	assert.Equal(t, "PTR", v)

	appendInv, _ := g.MethodInvoker(method(t, tDoc, "Append", tString))
	d := &Doc{X: "a"}
	v, err = appendInv.Invoke(d, "bc")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, "abc", d.X)
	_, err = appendInv.Invoke(Doc{}, "x")
	assert.ErrorIs(t, err, member.ErrInvocation, "pointer receivers need pointers")
	_, err = appendInv.Invoke(d, 1)
	assert.ErrorIs(t, err, member.ErrInvocation)
	_, err = appendInv.Invoke(nil, "x")
	assert.ErrorIs(t, err, member.ErrInvocation)

	join, _ := g.MethodInvoker(method(t, tDoc, "Join", tString, reflect.TypeFor[[]string]()))
	v, err = join.Invoke(d, "-", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a-b", v)

	sum, _ := g.MethodInvoker(method(t, tDoc, "Sum", reflect.TypeFor[int](), reflect.TypeFor[int]()))
	v, err = sum.Invoke(nil, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestGenericMethodErrors(t *testing.T) {
	g := access.Generic()
	check, _ := g.MethodInvoker(method(t, tDoc, "Check", reflect.TypeFor[int]()))

	v, err := check.Invoke(&Doc{}, 1)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = check.Invoke(&Doc{}, -1)
	require.ErrorIs(t, err, member.ErrInvocation)
	var me *member.Error
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Signature, "Doc.Check(int)")
	assert.EqualError(t, me.Cause, "negative")

	explode, _ := g.MethodInvoker(method(t, tDoc, "Explode"))
	_, err = explode.Invoke(&Doc{})
	assert.ErrorIs(t, err, member.ErrInvocation)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestGenericAbstractMethod(t *testing.T) {
	inv, err := access.Generic().MethodInvoker(method(t, reflect.TypeFor[Titled](), "Title"))
	require.NoError(t, err)

	v, err := inv.Invoke(Doc{X: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "ABC", v)

	_, err = inv.Invoke(42)
	assert.ErrorIs(t, err, member.ErrInvocation)
}

func TestConstruct(t *testing.T) {
	r := host.NewRegistry()
	require.NoError(t, r.RegisterConstructor(func(x string) (*Doc, error) {
		if x == "" {
			return nil, errors.New("empty")
		}
		return &Doc{X: x}, nil
	}))
	c := r.Constructors(tDoc)[0]

	v, err := access.Construct(c, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", v.(*Doc).X)

	_, err = access.Construct(c, "")
	assert.ErrorIs(t, err, member.ErrInvocation)
}

type fakeSynth struct{ err error }

func (f fakeSynth) InvokerFor(m *member.Method) (access.MethodInvoker, error) {
	if f.err != nil {
		return nil, f.err
	}
	return access.Generic().MethodInvoker(m)
}

type countingMetrics struct {
	created   []string
	fallbacks []string
}

func (c *countingMetrics) AccessorCreated(kind, strategy string) {
	c.created = append(c.created, kind+"/"+strategy)
}

func (c *countingMetrics) StrategyFallback(strategy, kind string) {
	c.fallbacks = append(c.fallbacks, kind+"/"+strategy)
}

func TestChainFallsBackOnSynthesisFailure(t *testing.T) {
	m := method(t, tDoc, "Title")
	metrics := &countingMetrics{}
	failing := access.Synthesized(fakeSynth{err: fmt.Errorf("%w: compiler missing", member.ErrSynthesisUnavailable)})
	chain := access.NewChain(access.Options{Metrics: metrics}, failing, access.Direct(), access.Generic())

	inv, err := chain.MethodInvoker(m)
	require.NoError(t, err)
	assert.Equal(t, access.StrategyGeneric, inv.Strategy())
	assert.Equal(t, []string{"method/synthesized", "method/direct"}, metrics.fallbacks)
	assert.Equal(t, []string{"method/generic"}, metrics.created)

	v, err := inv.Invoke(Doc{X: "q"})
	require.NoError(t, err)
	assert.Equal(t, "Q", v)

	f, err := chain.FieldAccessor(field(t, "X"))
	require.NoError(t, err)
	assert.Equal(t, access.StrategyDirect, f.Strategy())
	assert.Equal(t, "chain(synthesized,direct,generic)", chain.Name())
}

type brokenProvider struct{ access.Provider }

func (brokenProvider) MethodInvoker(*member.Method) (access.MethodInvoker, error) {
	return nil, member.ErrAccessDenied
}

func TestChainSurfacesOtherErrors(t *testing.T) {
	chain := access.Chain(brokenProvider{access.Generic()}, access.Generic())
	_, err := chain.MethodInvoker(method(t, tDoc, "Title"))
	assert.ErrorIs(t, err, member.ErrAccessDenied)

	empty := access.Chain()
	_, err = empty.FieldAccessor(field(t, "X"))
	assert.ErrorIs(t, err, access.ErrStrategyUnavailable)
}
