// Package access turns member descriptors into bound accessors.
//
// A [Provider] produces a [FieldAccessor] for a field or a [MethodInvoker]
// for a method. Three strategies exist:
//
//   - [Generic]: reflect-based get, set and call. Always available.
//   - [Direct]: reads and writes fields at their precomputed byte offset.
//     Gated by a one-time probe of the runtime; disabled with the purego
//     build tag.
//   - [Synthesized]: delegates method invocation to a synthesizer that
//     produces a specialized routine per method.
//
// Strategies compose with [Chain]. A provider that cannot serve a member
// returns [ErrStrategyUnavailable] and the chain moves on to the next one.
// The choice is made once, when the accessor is created; an accessor never
// switches strategy afterwards.
package access
