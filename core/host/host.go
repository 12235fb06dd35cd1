package host

import (
	"reflect"

	"github.com/codewandler/reflx/core/member"
)

// Introspector enumerates and looks up the declared members of a type.
// Pointer types are unwrapped, so *T and T describe the same members.
type Introspector interface {
	Fields(t reflect.Type) []*member.Field
	Field(t reflect.Type, name string) (*member.Field, bool)

	Methods(t reflect.Type) []*member.Method
	// Method looks up a method by name and exact parameter types.
	Method(t reflect.Type, name string, params ...reflect.Type) (*member.Method, bool)

	Constructors(t reflect.Type) []*member.Constructor
	// Constructor looks up a constructor by exact parameter types.
	Constructor(t reflect.Type, params ...reflect.Type) (*member.Constructor, bool)

	TypeAnnotations(t reflect.Type) member.AnnotationSet
}
