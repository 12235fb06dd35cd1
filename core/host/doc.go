// Package host is the introspection facility the rest of the module builds
// on. It enumerates the declared members of a type and exposes them as
// member descriptors.
//
// Go reflection covers fields and methods but has no notion of
// constructors, static methods or annotations. [Registry] fills that gap:
// factory functions and package-level functions can be registered against a
// type, and annotations can be attached to types, methods and parameters.
// Struct tags are read as field annotations.
//
//	host.MustRegisterConstructor(NewUser)
//	host.MustRegisterStatic(reflect.TypeFor[User](), "Parse", ParseUser)
//	host.Annotate(reflect.TypeFor[User](), member.Annotation{Key: "table", Name: "users"})
//
// Member order is stable for the lifetime of a registry entry: visible
// fields in reflect.VisibleFields order, then the method set of *T in
// reflect's order followed by static methods in registration order, and
// constructors in registration order.
package host
