// Package action bridges asynchronous plugin computations back to
// event-driven consumers.
//
// Watcher[T] wraps one computation: Pending -> Running -> Succeeded,
// Cancelled or Failed. Observers registered with OnFinished are notified
// exactly once. Manager is the registry of in-flight actions so a host can
// enumerate and cancel them.
package action
