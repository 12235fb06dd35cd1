package host

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/reflx/core/member"
)

type Base struct {
	Created int64 `db:"created_at"`
}

type User struct {
	Base
	Name  string `json:"name,omitempty" db:"name"`
	email string
	_     int
}

func (u User) Greeting() string { return "hi " + u.Name }

func (u *User) Rename(name string) { u.Name = name }

type Shape interface {
	Area() float64
}

var (
	tUser  = reflect.TypeFor[User]()
	tShape = reflect.TypeFor[Shape]()
	tInt   = reflect.TypeFor[int]()
	tStr   = reflect.TypeFor[string]()
)

func TestFields(t *testing.T) {
	r := NewRegistry()

	fields := r.Fields(tUser)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	assert.Equal(t, []string{"Base", "Created", "Name", "email"}, names)

	name, ok := r.Field(tUser, "Name")
	require.True(t, ok)
	json, ok := name.Annotation("json")
	require.True(t, ok)
	assert.Equal(t, "name", json.Name)
	assert.Equal(t, []string{"omitempty"}, json.Options)
	db, ok := name.Annotation("db")
	require.True(t, ok)
	assert.Equal(t, "name", db.Name)

	created, ok := r.Field(reflect.TypeFor[*User](), "Created")
	require.True(t, ok)
	assert.True(t, created.Modifiers().Has(member.Promoted))

	_, ok = r.Field(tUser, "missing")
	assert.False(t, ok)
	assert.Empty(t, r.Fields(tInt))
}

func TestMethods(t *testing.T) {
	r := NewRegistry()
	methods := r.Methods(tUser)
	require.Len(t, methods, 2)
	assert.Equal(t, "Greeting", methods[0].Name())
	assert.Equal(t, "Rename", methods[1].Name())

	m, ok := r.Method(tUser, "Rename", tStr)
	require.True(t, ok)
	assert.False(t, m.ValueReceiver())

	_, ok = r.Method(tUser, "Rename", tInt)
	assert.False(t, ok)

	g, ok := r.Method(tUser, "Greeting")
	require.True(t, ok)
	assert.True(t, g.ValueReceiver())
}

func TestInterfaceMethodsAreAbstract(t *testing.T) {
	r := NewRegistry()
	m, ok := r.Method(tShape, "Area")
	require.True(t, ok)
	assert.True(t, m.IsAbstract())
}

func TestStatics(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterStatic(tUser, "Parse", func(s string) (User, error) { return User{Name: s}, nil }))
	require.NoError(t, r.RegisterStatic(tUser, "Parse", func(n int) User { return User{Name: strconv.Itoa(n)} },
		WithParamAnnotations(0, member.Annotation{Key: "unit", Name: "id"})))

	methods := r.Methods(tUser)
	require.Len(t, methods, 4)
	assert.True(t, methods[2].IsStatic())

	byInt, ok := r.Method(tUser, "Parse", tInt)
	require.True(t, ok)
	a, ok := byInt.Params()[0].Annotation("unit")
	require.True(t, ok)
	assert.Equal(t, "id", a.Name)

	assert.ErrorIs(t, r.RegisterStatic(tUser, "X", 42), ErrNotFunc)
	assert.ErrorIs(t, r.RegisterStatic(nil, "X", func() {}), ErrNilType)
}

func TestConstructors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterConstructor(func() *User { return &User{} }))
	require.NoError(t, r.RegisterConstructor(func(name string) (User, error) { return User{Name: name}, nil },
		WithName("Named"), WithAnnotations(member.Annotation{Key: "doc", Name: "by name"})))

	ctors := r.Constructors(tUser)
	require.Len(t, ctors, 2)
	assert.Equal(t, "New", ctors[0].Name())

	c, ok := r.Constructor(tUser, tStr)
	require.True(t, ok)
	assert.Equal(t, "Named", c.Name())
	assert.True(t, c.ReturnsError())
	_, ok = c.Annotation("doc")
	assert.True(t, ok)

	_, ok = r.Constructor(tUser, tInt)
	assert.False(t, ok)

	assert.ErrorIs(t, r.RegisterConstructor(func() {}), ErrBadConstructor)
	assert.ErrorIs(t, r.RegisterConstructor(func() (User, int) { return User{}, 0 }), ErrBadConstructor)
	assert.ErrorIs(t, r.RegisterConstructor(func() **User { return nil }), ErrBadConstructor)
	assert.ErrorIs(t, r.RegisterConstructor(func() Shape { return nil }), ErrBadConstructor)
	assert.ErrorIs(t, r.RegisterConstructor("nope"), ErrNotFunc)
}

func TestAnnotations(t *testing.T) {
	r := NewRegistry()
	r.Annotate(tUser, member.Annotation{Key: "table", Name: "users"})
	r.AnnotateMethod(tUser, "Rename", WithAnnotations(member.Annotation{Key: "audit"}),
		WithParamAnnotations(0, member.Annotation{Key: "validate", Name: "nonempty"}))

	a, ok := r.TypeAnnotations(tUser).Annotation("table")
	require.True(t, ok)
	assert.Equal(t, "users", a.Name)

	m, ok := r.Method(tUser, "Rename", tStr)
	require.True(t, ok)
	_, ok = m.Annotation("audit")
	assert.True(t, ok)
	v, ok := m.Params()[0].Annotation("validate")
	require.True(t, ok)
	assert.Equal(t, "nonempty", v.Name)
}

func TestRegistrationInvalidatesEntry(t *testing.T) {
	r := NewRegistry()
	assert.Len(t, r.Methods(tUser), 2)
	require.NoError(t, r.RegisterStatic(tUser, "Zero", func() User { return User{} }))
	assert.Len(t, r.Methods(tUser), 3)
}

func TestStaticDescriptorSurvivesRebuild(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterStatic(tUser, "Zero", func() User { return User{} }))
	before, ok := r.Method(tUser, "Zero")
	require.True(t, ok)

	r.Annotate(tUser, member.Annotation{Key: "table", Name: "users"})
	after, ok := r.Method(tUser, "Zero")
	require.True(t, ok)
	assert.Same(t, before, after)
}

func TestConcurrentRegistry(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%10 == 0 {
				_ = r.RegisterStatic(tUser, "S"+strconv.Itoa(i), func() error { return errors.New("x") })
			}
			_ = r.Fields(tUser)
			_, _ = r.Method(tUser, "Greeting")
		}()
	}
	wg.Wait()
	assert.Len(t, r.Methods(tUser), 7)
	assert.Contains(t, r.Describe(tUser), "7 methods")
}
