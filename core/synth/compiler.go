package synth

// RoutineFunc is the single contract every routine implements.
type RoutineFunc func(target any, args []any) (any, error)

// Compiler turns a plan into a routine. Compile returns ErrNoSpecialization
// when the compiler has nothing for the plan.
type Compiler interface {
	Name() string
	Available() bool
	Compile(p *Plan) (RoutineFunc, error)
}
