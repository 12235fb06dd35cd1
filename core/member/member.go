package member

import (
	"reflect"
	"strings"

	"github.com/codewandler/reflx/core/reflector"
)

var errorType = reflect.TypeFor[error]()

// Member is the capability shared by every descriptor kind. The set of
// implementations is closed: *Field, *Method and *Constructor.
type Member interface {
	Annotated
	Kind() Kind
	Name() string
	DeclaringType() reflect.Type
	Modifiers() Modifiers
	// Signature is a human readable description used in diagnostics.
	Signature() string
	member()
}

// Callable is a member with a parameter list.
type Callable interface {
	Member
	Params() []Parameter
	ParamTypes() []reflect.Type
	Results() []reflect.Type
	ReturnsError() bool
	Func() reflect.Value
}

// Parameter describes one positional parameter of a callable member.
type Parameter struct {
	Index int
	Type  reflect.Type
	anns  AnnotationSet
}

func (p Parameter) Annotations() []Annotation { return p.anns.Annotations() }

func (p Parameter) Annotation(key string) (Annotation, bool) { return p.anns.Annotation(key) }

func (p Parameter) String() string { return reflector.NameOf(p.Type) }

func newParams(types []reflect.Type, anns []AnnotationSet) []Parameter {
	out := make([]Parameter, len(types))
	for i, t := range types {
		out[i] = Parameter{Index: i, Type: t}
		if i < len(anns) {
			out[i].anns = anns[i]
		}
	}
	return out
}

func paramTypes(ps []Parameter) []reflect.Type {
	out := make([]reflect.Type, len(ps))
	for i, p := range ps {
		out[i] = p.Type
	}
	return out
}

func fnTypes(n int, at func(int) reflect.Type, skip int) []reflect.Type {
	out := make([]reflect.Type, 0, n-skip)
	for i := skip; i < n; i++ {
		out = append(out, at(i))
	}
	return out
}

func returnsError(results []reflect.Type) bool {
	return len(results) > 0 && results[len(results)-1] == errorType
}

// Unpack converts the raw results of a call into a single value. A trailing
// error result is split off and returned as the error. No remaining results
// yield nil, one yields the value itself and several yield a []any.
func Unpack(out []reflect.Value, withError bool) (any, error) {
	if withError && len(out) > 0 {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = v.Interface()
	}
	return vals, nil
}

// Describe renders a requested member shape. Nil entries in types stand for
// untyped nil arguments.
func Describe(declaring reflect.Type, name string, types []reflect.Type) string {
	return reflector.NameOf(declaring) + "." + name + "(" + typeList(types) + ")"
}

func typeList(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = reflector.NameOf(t)
	}
	return strings.Join(names, ", ")
}

func resultList(types []reflect.Type) string {
	switch len(types) {
	case 0:
		return ""
	case 1:
		return " " + reflector.NameOf(types[0])
	}
	return " (" + typeList(types) + ")"
}

func signature(mods Modifiers, declaring reflect.Type, name string, params []Parameter, results []reflect.Type) string {
	var b strings.Builder
	if s := mods.String(); s != "" {
		b.WriteString(s)
		b.WriteByte(' ')
	}
	b.WriteString(Describe(declaring, name, paramTypes(params)))
	b.WriteString(resultList(results))
	return b.String()
}
