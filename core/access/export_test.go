package access

// SetDirectAvailable overrides the runtime probe for the duration of a test.
func SetDirectAvailable(ok bool) (restore func()) {
	prev := directAvailable
	directAvailable = func() bool { return ok }
	return func() { directAvailable = prev }
}
