// Package worker provides the executor actions run on: a goroutine-per-call
// pool bounded by a weighted semaphore.
package worker
