// Package actor orchestrates single plugin invocations end to end.
//
// An actor validates the call (state and input arity), registers a
// Watcher with the action Manager, runs the plugin on an executor with a
// fresh progress token, and on completion unregisters the action, records
// metrics and a trace span, and notifies subscribers with exactly one
// OnFinished or OnError. An actor holds one invocation at a time; a second
// Act while the first is in flight fails with ErrBusy.
//
// Subscribers run on the goroutine that completed the computation and must
// not call Act on the same actor synchronously.
package actor
