package host

import "errors"

var (
	ErrNotFunc        = errors.New("not a function")
	ErrBadConstructor = errors.New("constructor must return T or *T, optionally followed by error")
	ErrNilType        = errors.New("type is nil")
)
