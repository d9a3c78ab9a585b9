package progress

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between snapshots delivered to
// watchers.
const DefaultInterval = 100 * time.Millisecond

// Snapshot is a consistent view of a Progress at one point in time.
type Snapshot struct {
	Current   int64   `json:"current"`
	Total     int64   `json:"total"`
	Percent   float64 `json:"percent"`
	Cancelled bool    `json:"cancelled"`
}

// Progress is the token passed into every long-running plugin call. The
// running computation reports through SetProgress and polls Cancelled; the
// owner requests cancellation. All methods are safe for concurrent use.
type Progress struct {
	mu      sync.Mutex
	current int64
	total   int64

	cancelled atomic.Bool
	done      chan struct{}

	watching atomic.Int32
	notify   rate.Sometimes

	watchMu  sync.Mutex
	watchers []chan Snapshot
	closed   bool
}

func New() *Progress {
	return NewWithInterval(DefaultInterval)
}

func NewWithInterval(interval time.Duration) *Progress {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Progress{
		done:   make(chan struct{}),
		notify: rate.Sometimes{Interval: interval},
	}
}

// SetProgress overwrites the current/total pair. It never blocks on
// watchers: snapshots are throttled and dropped when a watcher lags.
func (p *Progress) SetProgress(current, total int64) {
	p.mu.Lock()
	p.current = current
	p.total = total
	p.mu.Unlock()

	if p.watching.Load() > 0 {
		p.notify.Do(p.publish)
	}
}

// Reset zeroes the current count at the start of a call.
func (p *Progress) Reset() {
	p.mu.Lock()
	p.current = 0
	p.mu.Unlock()
}

func (p *Progress) Cancelled() bool {
	return p.cancelled.Load()
}

// RequestCancel raises the cancellation flag. It returns true only for the
// call that raised it; the flag is never lowered.
func (p *Progress) RequestCancel() bool {
	if !p.cancelled.CompareAndSwap(false, true) {
		return false
	}
	close(p.done)
	if p.watching.Load() > 0 {
		p.publish()
	}
	return true
}

// Done is closed once cancellation has been requested.
func (p *Progress) Done() <-chan struct{} {
	return p.done
}

func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	s := Snapshot{Current: p.current, Total: p.total}
	p.mu.Unlock()

	s.Cancelled = p.cancelled.Load()
	if s.Total > 0 {
		s.Percent = float64(s.Current) / float64(s.Total) * 100
	}
	return s
}

// Watch returns a stream of snapshots. Only the latest pending snapshot is
// kept. The stream is closed by Close; watching a closed Progress yields a
// closed stream holding the final snapshot.
func (p *Progress) Watch() <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	p.watchMu.Lock()
	defer p.watchMu.Unlock()

	if p.closed {
		ch <- p.Snapshot()
		close(ch)
		return ch
	}
	p.watchers = append(p.watchers, ch)
	p.watching.Add(1)
	return ch
}

// Close delivers a final snapshot and closes every watch stream. Updates
// after Close are not delivered.
func (p *Progress) Close() {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	final := p.Snapshot()
	for _, ch := range p.watchers {
		offer(ch, final)
		close(ch)
	}
	p.watchers = nil
	p.watching.Store(0)
}

func (p *Progress) publish() {
	s := p.Snapshot()

	p.watchMu.Lock()
	defer p.watchMu.Unlock()

	if p.closed {
		return
	}
	for _, ch := range p.watchers {
		offer(ch, s)
	}
}

// offer replaces a stale pending snapshot without blocking.
func offer(ch chan Snapshot, s Snapshot) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}
