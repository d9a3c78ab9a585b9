package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	t.Parallel()

	p := New()
	assert.Equal(t, Snapshot{}, p.Snapshot())

	p.SetProgress(25, 200)
	s := p.Snapshot()
	assert.Equal(t, int64(25), s.Current)
	assert.Equal(t, int64(200), s.Total)
	assert.InDelta(t, 12.5, s.Percent, 1e-9)
	assert.False(t, s.Cancelled)
}

func TestSnapshot_ZeroTotal(t *testing.T) {
	t.Parallel()

	p := New()
	p.SetProgress(5, 0)
	assert.Equal(t, float64(0), p.Snapshot().Percent)
}

func TestReset(t *testing.T) {
	t.Parallel()

	p := New()
	p.SetProgress(7, 10)
	p.Reset()
	s := p.Snapshot()
	assert.Equal(t, int64(0), s.Current)
	assert.Equal(t, int64(10), s.Total)
}

func TestRequestCancel_OnlyOnce(t *testing.T) {
	t.Parallel()

	p := New()
	assert.False(t, p.Cancelled())

	var wg sync.WaitGroup
	var mu sync.Mutex
	raised := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.RequestCancel() {
				mu.Lock()
				raised++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, raised)
	assert.True(t, p.Cancelled())
	assert.True(t, p.Snapshot().Cancelled)

	select {
	case <-p.Done():
	default:
		t.Fatal("Done must be closed after cancellation")
	}
}

func TestWatch_ReceivesUpdatesAndFinalSnapshot(t *testing.T) {
	t.Parallel()

	p := NewWithInterval(time.Millisecond)
	ch := p.Watch()

	p.SetProgress(1, 4)
	select {
	case s := <-ch:
		assert.Equal(t, int64(1), s.Current)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	p.SetProgress(4, 4)
	p.Close()

	var last Snapshot
	for s := range ch {
		last = s
	}
	assert.Equal(t, int64(4), last.Current)
	assert.InDelta(t, 100, last.Percent, 1e-9)
}

func TestWatch_NeverBlocksProducer(t *testing.T) {
	t.Parallel()

	p := NewWithInterval(time.Nanosecond)
	_ = p.Watch() // never drained

	done := make(chan struct{})
	go func() {
		for i := int64(0); i < 10000; i++ {
			p.SetProgress(i, 10000)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("SetProgress blocked on a lagging watcher")
	}
}

func TestWatch_CancellationIsPublished(t *testing.T) {
	t.Parallel()

	p := New()
	ch := p.Watch()
	require.True(t, p.RequestCancel())

	s := <-ch
	assert.True(t, s.Cancelled)
}

func TestWatch_AfterClose(t *testing.T) {
	t.Parallel()

	p := New()
	p.SetProgress(3, 3)
	p.Close()
	p.Close()

	ch := p.Watch()
	s, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, int64(3), s.Current)

	_, ok = <-ch
	assert.False(t, ok)
}
