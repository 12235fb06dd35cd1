package synth

import "errors"

var (
	// ErrNotSynthesizable is returned for members a routine cannot call:
	// unexported, abstract or without an implementation.
	ErrNotSynthesizable = errors.New("member cannot be synthesized")
	// ErrNoSpecialization is returned by a compiler that has nothing for a plan.
	ErrNoSpecialization = errors.New("no specialization")
	// ErrDisabled is returned when synthesis is switched off for the process.
	ErrDisabled = errors.New("synthesis disabled")
)
