// Package synth synthesizes specialized invocation routines for methods.
//
// A routine implements one contract, [RoutineFunc]: take an opaque target
// and an argument slice, call exactly one method, return its result. For
// each method the [Synthesizer] derives a [Key] from the declaring type,
// the method name and the parameter types, builds a [Plan] and hands it to
// its compilers in order:
//
//   - the table compiler loads a routine generated at build time by
//     cmd/reflgen and registered through [Register]
//   - the closure compiler assembles a routine from precomputed receiver,
//     argument and result closures, or from a typed trampoline for common
//     static function shapes
//
// The first routine produced for a method is kept and reused for every
// later request for that method. Routines are identified by the code they
// run, not by Key: distinct types can share a canonical name, and two
// registries can bind different functions to the same static. Routines are
// never unloaded. Concurrent first requests for one method synthesize once.
//
// [Synthesizer.Unit] turns the routines loaded at run time back into a
// source unit, so members first seen in production can be generated ahead
// of time.
//
// Only public, non-abstract methods can be synthesized. Any other request
// fails with [ErrNotSynthesizable]; the access layer treats that, like every
// other synthesis failure, as a reason to fall back to generic access.
package synth
