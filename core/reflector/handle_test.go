package reflector

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name string
}

type anotherStruct struct {
	Value int
}

const pkg = "github.com/codewandler/reflx/core/reflector"

func TestHandleOf(t *testing.T) {
	h := HandleOf(testStruct{Name: "test"})
	assert.Equal(t, pkg+".testStruct", h.Name)
	assert.Equal(t, "testStruct", h.Simple())
	assert.True(t, h.Valid())
}

func TestHandleOf_PointerSharesHandle(t *testing.T) {
	h1 := HandleOf(&testStruct{})
	h2 := HandleOf(testStruct{})
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, reflect.Pointer, h1.Type.Kind())
}

func TestHandleFor(t *testing.T) {
	assert.Equal(t, pkg+".testStruct", HandleFor[testStruct]().Name)
	assert.Equal(t, pkg+".testStruct", HandleFor[*testStruct]().Name)
}

func TestHandleForType_Nil(t *testing.T) {
	h := HandleForType(nil)
	assert.False(t, h.Valid())
	assert.Empty(t, h.Name)
	assert.Empty(t, h.Simple())
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeFor[int](), "int"},
		{reflect.TypeFor[string](), "string"},
		{reflect.TypeFor[*int](), "*int"},
		{reflect.TypeFor[[]testStruct](), "[]" + pkg + ".testStruct"},
		{reflect.TypeFor[[3]byte](), "[3]uint8"},
		{reflect.TypeFor[map[string]*anotherStruct](), "map[string]*" + pkg + ".anotherStruct"},
		{reflect.TypeFor[any](), "any"},
		{reflect.TypeFor[error](), "error"},
		{reflect.TypeFor[<-chan int](), "<-chan int"},
		{nil, "nil"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NameOf(tt.typ))
	}
}

func TestCacheHit(t *testing.T) {
	Reset()
	h1 := HandleOf(testStruct{})
	h2 := HandleOf(testStruct{})
	require.Equal(t, h1, h2)

	muCache.RLock()
	_, ok := cache[reflect.TypeFor[testStruct]()]
	_, okPtr := cache[reflect.TypeFor[*testStruct]()]
	muCache.RUnlock()
	assert.True(t, ok)
	assert.False(t, okPtr, "pointer types are cached under their element")
}

func TestConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = HandleOf(testStruct{})
				_ = HandleFor[anotherStruct]()
				_ = HandleForType(reflect.TypeFor[string]())
			}
		}()
	}
	wg.Wait()
}
