// Package solo contains single-value, synchronous ROP primitives that operate
// on Result[T]. Actors use them to post-process plugin results without
// channels.
//
// Highlights:
// - Success/Fail/Cancel: construct Result[T]
// - Validate/AndValidate: produce a validation failure on invalid input
// - Switch/Map/Try: move from Result[In] to Result[Out], keeping the error kind
// - Tee/DoubleTee/Finally: side effects and reduction via success/error/cancel handlers
// - Protect: recover a panicking computation into a computation failure
package solo
