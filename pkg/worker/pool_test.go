package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ib-77/bitbench/pkg/rop/core"
)

func TestPool_RespectsLimit(t *testing.T) {
	t.Parallel()

	const limit = 3
	p := New(limit)

	var running, peak atomic.Int32
	for i := 0; i < 20; i++ {
		p.Go(func() {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			running.Add(-1)
		})
	}
	p.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(limit))
	assert.Equal(t, int32(0), running.Load())
}

func TestPool_GoDoesNotBlockCaller(t *testing.T) {
	t.Parallel()

	p := New(1)
	release := make(chan struct{})
	p.Go(func() { <-release })

	submitted := make(chan struct{})
	go func() {
		p.Go(func() {})
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("Go blocked while the pool was full")
	}
	close(release)
	p.Wait()
}

func TestPool_Unbounded(t *testing.T) {
	t.Parallel()

	p := New(0)
	var n atomic.Int32
	for i := 0; i < 50; i++ {
		p.Go(func() { n.Add(1) })
	}
	p.Wait()
	assert.Equal(t, int32(50), n.Load())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	ctx := core.WithWorkerOptions(context.Background(), 2)
	p := FromContext(ctx)
	assert.NotNil(t, p.sem)

	var n atomic.Int32
	p.Go(func() { n.Add(1) })
	p.Wait()
	assert.Equal(t, int32(1), n.Load())
}

func TestPool_GoUntil(t *testing.T) {
	t.Parallel()

	p := New(1)
	release, started := make(chan struct{}), make(chan struct{})
	p.Go(func() {
		close(started)
		<-release
	})
	<-started

	cancel := make(chan struct{})
	admitted := make(chan bool, 1)
	p.GoUntil(cancel, func(ok bool) { admitted <- ok })

	close(cancel)
	select {
	case ok := <-admitted:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("queued work was not abandoned on cancel")
	}

	close(release)
	p.GoUntil(make(chan struct{}), func(ok bool) { admitted <- ok })
	p.Wait()
	assert.True(t, <-admitted)
}

func TestPool_GoUntilAlreadyCancelled(t *testing.T) {
	t.Parallel()

	cancel := make(chan struct{})
	close(cancel)

	var admitted atomic.Bool
	p := New(0)
	p.GoUntil(cancel, func(ok bool) { admitted.Store(ok) })
	p.Wait()
	assert.False(t, admitted.Load())
}
