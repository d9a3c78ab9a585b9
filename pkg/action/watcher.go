package action

import (
	"context"
	"sync"

	"github.com/ib-77/bitbench/pkg/progress"
	"github.com/ib-77/bitbench/pkg/rop"
	"github.com/ib-77/bitbench/pkg/rop/solo"
)

// State is the lifecycle position of a Watcher.
type State int32

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateCancelled || s == StateFailed
}

// Executor runs fn asynchronously. *worker.Pool satisfies it.
type Executor interface {
	Go(fn func())
}

// QueueingExecutor is an Executor that can give up on queued work. fn runs
// with admitted=false when cancel closes before a slot frees up.
// *worker.Pool satisfies it.
type QueueingExecutor interface {
	Executor
	GoUntil(cancel <-chan struct{}, fn func(admitted bool))
}

// Watcher observes exactly one asynchronous computation producing a
// rop.Result[T]. It is started once and never reused.
type Watcher[T any] struct {
	progress *progress.Progress

	mu        sync.Mutex
	state     State
	result    rop.Result[T]
	observers []func(rop.Result[T])

	done chan struct{}
}

// NewWatcher binds a watcher to its progress token. A nil token gets a
// fresh one.
func NewWatcher[T any](p *progress.Progress) *Watcher[T] {
	if p == nil {
		p = progress.New()
	}
	return &Watcher[T]{
		progress: p,
		done:     make(chan struct{}),
	}
}

// Start hands compute to exec. Panics inside compute become computation
// failures. When exec is a QueueingExecutor, a cancellation requested while
// the computation still waits for a slot finishes the watcher as cancelled
// without calling compute.
func (w *Watcher[T]) Start(exec Executor, compute func(p *progress.Progress) rop.Result[T]) error {
	w.mu.Lock()
	if w.state != StatePending {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.state = StateRunning
	w.mu.Unlock()

	w.progress.Reset()
	run := func() {
		w.finish(solo.Protect(func() rop.Result[T] {
			return compute(w.progress)
		}))
	}
	if q, ok := exec.(QueueingExecutor); ok {
		q.GoUntil(w.progress.Done(), func(admitted bool) {
			if !admitted {
				w.finish(rop.Cancel[T](nil))
				return
			}
			run()
		})
		return nil
	}
	exec.Go(run)
	return nil
}

// Cancel requests cooperative cancellation; the computation decides when to
// stop.
func (w *Watcher[T]) Cancel() {
	w.progress.RequestCancel()
}

func (w *Watcher[T]) Progress() *progress.Progress {
	return w.progress
}

func (w *Watcher[T]) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Watcher[T]) IsFinished() bool {
	return w.State().IsTerminal()
}

// Result returns the terminal result, or ErrNotReady while the computation
// is still pending or running.
func (w *Watcher[T]) Result() (rop.Result[T], error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.state.IsTerminal() {
		return rop.Result[T]{}, ErrNotReady
	}
	return w.result, nil
}

// OnFinished registers fn to receive the terminal result exactly once. When
// the watcher has already finished, fn is called right away.
func (w *Watcher[T]) OnFinished(fn func(res rop.Result[T])) {
	w.mu.Lock()
	if w.state.IsTerminal() {
		res := w.result
		w.mu.Unlock()
		fn(res)
		return
	}
	w.observers = append(w.observers, fn)
	w.mu.Unlock()
}

// Done is closed after every observer registered before completion has
// returned.
func (w *Watcher[T]) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until Done or ctx is cancelled.
func (w *Watcher[T]) Wait(ctx context.Context) (rop.Result[T], error) {
	select {
	case <-w.done:
		return w.Result()
	case <-ctx.Done():
		return rop.Result[T]{}, ctx.Err()
	}
}

func (w *Watcher[T]) finish(res rop.Result[T]) {
	if res.IsEmpty() {
		res = rop.Fail[T](rop.Computation(ErrNoResult))
	}

	w.mu.Lock()
	w.result = res
	switch {
	case res.IsSuccess():
		w.state = StateSucceeded
	case res.IsCancel():
		w.state = StateCancelled
	default:
		w.state = StateFailed
	}
	observers := w.observers
	w.observers = nil
	w.mu.Unlock()

	w.progress.Close()
	for _, fn := range observers {
		fn(res)
	}
	close(w.done)
}
