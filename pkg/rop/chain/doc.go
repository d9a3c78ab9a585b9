// Package chain is a fluent wrapper around rop.Result for synchronous
// pipelines built from solo primitives. Every step after the first failure
// is skipped and the failure is carried to the end unchanged.
//
// Key operations:
//   - Start/FromValue: begin a chain from a Result[T] or a value
//   - Then: switch to a new Result[U]
//   - ThenTry: call a func returning (U, error)
//   - Map: transform the successful value
//   - Check: turn a rejected value into a validation failure
//   - Ensure: side effects on success
//   - Finally: collapse the chain through handlers
package chain
