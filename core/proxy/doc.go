// Package proxy is the caller-facing surface: a [Reflector] hands out
// proxies for types, objects, fields, methods and constructors.
//
// Type proxies are promoted into a permanent cache only after a type has
// been requested Threshold times (20 by default). Below the threshold each
// request gets a fresh proxy that is not retained, so types touched once
// during start-up do not occupy memory for the life of the process. The
// whole count-or-promote decision for a request runs in one critical
// section.
//
// Once a proxy exists, its field, method, constructor and annotation
// proxies are cached for the proxy's lifetime. Accessors are obtained from
// the configured access.Provider: field accessors when the field proxy is
// built, method invokers on first invocation.
//
//	r := proxy.New(proxy.Options{})
//	user, _ := r.Instance(reflect.TypeFor[User]())
//	_ = user.Set("Name", "gopher")
//	greeting, _ := user.Call("Greet", "hello")
package proxy
