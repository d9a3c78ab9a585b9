// Package rop holds the result model shared by every action: Result[T] is
// either a payload or an error, and errors carry a Kind (validation,
// cancellation, computation) so hosts can tell failures apart without
// parsing messages.
//
// Subpackages:
// - solo: synchronous combinators over Result[T], including Protect which
//   turns panics into computation failures
// - chain: a fluent wrapper over solo for validation pipelines
// - core: execution options carried through context.Context
package rop
