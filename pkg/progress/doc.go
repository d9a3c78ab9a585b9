// Package progress implements the progress and cancellation token handed to
// every plugin computation.
//
// A computation calls SetProgress as often as it likes (once per processed
// bit is fine) and polls Cancelled at every unit of work. Cancellation is
// cooperative: nothing interrupts a computation that never polls.
package progress
