package worker

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/ib-77/bitbench/pkg/rop/core"
)

// Pool runs submitted functions on their own goroutines, with at most limit
// of them executing at once. A limit <= 0 means unbounded.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

func New(limit int) *Pool {
	p := &Pool{}
	if limit > 0 {
		p.sem = semaphore.NewWeighted(int64(limit))
	}
	return p
}

// FromContext sizes a pool from core.WithWorkerOptions, defaulting to
// runtime.NumCPU().
func FromContext(ctx context.Context) *Pool {
	return New(core.GetWorkerMaxCount(ctx, runtime.NumCPU()))
}

// Go schedules fn and returns immediately. Waiting for a free slot happens
// on the new goroutine, never on the caller's.
func (p *Pool) Go(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.sem != nil {
			// Acquire with a background context cannot fail.
			_ = p.sem.Acquire(context.Background(), 1)
			defer p.sem.Release(1)
		}
		fn()
	}()
}

// GoUntil is Go for work that may be abandoned while queued: if cancel
// closes before a slot is acquired, fn runs with admitted=false and without
// holding a slot.
func (p *Pool) GoUntil(cancel <-chan struct{}, fn func(admitted bool)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		select {
		case <-cancel:
			fn(false)
			return
		default:
		}
		if p.sem != nil {
			ctx, stop := context.WithCancel(context.Background())
			go func() {
				select {
				case <-cancel:
				case <-ctx.Done():
				}
				stop()
			}()
			err := p.sem.Acquire(ctx, 1)
			stop()
			if err != nil {
				fn(false)
				return
			}
			defer p.sem.Release(1)
		}
		fn(true)
	}()
}

// Wait blocks until every submitted function has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
