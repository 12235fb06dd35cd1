// Package reflector resolves runtime types into stable, cached type handles.
// A handle identifies a type independently of one level of pointer
// indirection, so *T and T share one handle.
package reflector

import (
	"reflect"
	"strconv"
	"sync"
)

// maxCacheSize bounds the handle cache. The set of types a program reflects
// on is small, so reaching it is rare; the cache is cleared when it is.
const maxCacheSize = 1024

var (
	muCache sync.RWMutex
	cache   = make(map[reflect.Type]TypeHandle)
)

// TypeHandle identifies a reflected type.
type TypeHandle struct {
	Name string       // canonical name, e.g. "pkg/path.TypeName"
	Type reflect.Type // pointer-unwrapped type
}

// Valid reports whether h refers to a type.
func (h TypeHandle) Valid() bool { return h.Type != nil }

// Simple returns the unqualified type name.
func (h TypeHandle) Simple() string {
	if h.Type == nil {
		return ""
	}
	if n := h.Type.Name(); n != "" {
		return n
	}
	return h.Type.String()
}

func (h TypeHandle) String() string { return h.Name }

// HandleOf returns the handle for the dynamic type of x.
func HandleOf(x any) TypeHandle {
	return HandleForType(reflect.TypeOf(x))
}

// HandleFor returns the handle for type parameter T.
func HandleFor[T any]() TypeHandle {
	return HandleForType(reflect.TypeFor[T]())
}

// HandleForType returns the handle for t, unwrapping a single pointer.
// Safe for concurrent use.
func HandleForType(t reflect.Type) TypeHandle {
	if t == nil {
		return TypeHandle{}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	muCache.RLock()
	h, ok := cache[t]
	muCache.RUnlock()
	if ok {
		return h
	}

	h = TypeHandle{Name: NameOf(t), Type: t}

	muCache.Lock()
	defer muCache.Unlock()
	if existing, ok := cache[t]; ok {
		return existing
	}
	if len(cache) >= maxCacheSize {
		cache = make(map[reflect.Type]TypeHandle)
	}
	cache[t] = h
	return h
}

// Reset drops all cached handles.
func Reset() {
	muCache.Lock()
	cache = make(map[reflect.Type]TypeHandle)
	muCache.Unlock()
}

// NameOf returns the canonical name of t. Named types are qualified with
// their full package path; composite types are named structurally.
func NameOf(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + NameOf(t.Elem())
	case reflect.Slice:
		return "[]" + NameOf(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + NameOf(t.Elem())
	case reflect.Map:
		return "map[" + NameOf(t.Key()) + "]" + NameOf(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + NameOf(t.Elem())
		case reflect.SendDir:
			return "chan<- " + NameOf(t.Elem())
		}
		return "chan " + NameOf(t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any"
		}
	}
	return t.String()
}
