package proxy

import "errors"

var (
	// ErrUnbound is returned when a proxy that is not bound to a target is
	// asked to act on its target.
	ErrUnbound = errors.New("proxy not bound to a target")
	// ErrNotInstantiable is returned for types that cannot be instantiated.
	ErrNotInstantiable = errors.New("type cannot be instantiated")
	// ErrNotInterface is returned when an interface type was expected.
	ErrNotInterface = errors.New("not an interface type")
	// ErrNilObject is returned when an object proxy is requested for nil.
	ErrNilObject = errors.New("nil object")
)
