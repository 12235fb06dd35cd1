// Package member describes the declared members of a type: fields, methods
// and constructors. Descriptors are immutable once built and share the
// [Member] capability, so callers can query name, declaring type, modifiers
// and annotations without caring about the member kind.
//
// Descriptors are produced by an introspector (see package host) and
// consumed by the resolver, the access strategies and the proxies.
package member
