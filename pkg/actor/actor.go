package actor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ib-77/bitbench/pkg/action"
	"github.com/ib-77/bitbench/pkg/progress"
	"github.com/ib-77/bitbench/pkg/rop"
	"github.com/ib-77/bitbench/pkg/rop/core"
	"github.com/ib-77/bitbench/pkg/rop/solo"
	"github.com/ib-77/bitbench/pkg/worker"
)

// Handlers receive the terminal notification of every action an actor runs.
// Exactly one of the two is called per action.
type Handlers[T any] struct {
	OnFinished func(out T)
	OnError    func(err error)
}

type Option func(*options)

type options struct {
	logger   *slog.Logger
	interval time.Duration
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProgressInterval sets how often progress snapshots reach watchers.
// core.WithProgressOptions on the Act context takes precedence.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// base holds what OperatorActor and AnalyzerActor share: the busy flag,
// registration with the manager, and post-processing.
type base[T any] struct {
	kind     string
	manager  *action.Manager
	exec     action.Executor
	logger   *slog.Logger
	interval time.Duration

	busy atomic.Bool

	mu       sync.RWMutex
	handlers []Handlers[T]
}

func newBase[T any](kind string, manager *action.Manager, exec action.Executor, opts []Option) *base[T] {
	o := options{interval: progress.DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if manager == nil {
		manager = action.NewManager(o.logger)
	}
	if exec == nil {
		exec = worker.New(0)
	}
	return &base[T]{
		kind:     kind,
		manager:  manager,
		exec:     exec,
		logger:   o.logger.With(slog.String("component", kind+"_actor")),
		interval: o.interval,
	}
}

// Subscribe adds listeners for terminal notifications.
func (b *base[T]) Subscribe(h Handlers[T]) {
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

// Busy reports whether an invocation is still in flight.
func (b *base[T]) Busy() bool {
	return b.busy.Load()
}

// Manager returns the registry actions are recorded in.
func (b *base[T]) Manager() *action.Manager {
	return b.manager
}

func (b *base[T]) dispatch(ctx context.Context, name string, inputs int,
	prepare func() error,
	compute func(p *progress.Progress) rop.Result[T]) (*action.Watcher[T], error) {

	if !b.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	if err := prepare(); err != nil {
		b.busy.Store(false)
		actionsTotal.WithLabelValues(b.kind, name, outcomeRejected).Inc()
		b.logger.Warn("action rejected",
			slog.String("plugin", name),
			slog.Int("inputs", inputs),
			slog.String("error", err.Error()))
		return nil, err
	}

	ctx, span := tracer.Start(ctx, b.kind+".act",
		trace.WithAttributes(
			attribute.String("plugin.name", name),
			attribute.Int("plugin.inputs", inputs),
		))

	p := progress.NewWithInterval(core.GetProgressInterval(ctx, b.interval))
	w := action.NewWatcher[T](p)
	id := b.manager.Register(name, w)
	span.SetAttributes(attribute.Int64("action.id", int64(id)))

	stop := context.AfterFunc(ctx, func() {
		p.RequestCancel()
	})
	started := time.Now()
	actionsInFlight.WithLabelValues(b.kind).Inc()

	w.OnFinished(func(res rop.Result[T]) {
		stop()
		b.postProcess(id, name, span, started, res)
	})

	b.logger.Debug("action dispatched",
		slog.Uint64("id", uint64(id)),
		slog.String("plugin", name),
		slog.Int("inputs", inputs))

	err := w.Start(b.exec, func(p *progress.Progress) rop.Result[T] {
		res := compute(p)
		if res.IsSuccess() && p.Cancelled() {
			return rop.Cancel[T](rop.ErrCancelled)
		}
		return res
	})
	if err != nil {
		// A fresh watcher is always pending; keep the actor usable anyway.
		b.manager.Unregister(id)
		stop()
		span.End()
		actionsInFlight.WithLabelValues(b.kind).Dec()
		b.busy.Store(false)
		return nil, err
	}
	return w, nil
}

func (b *base[T]) postProcess(id action.ID, name string, span trace.Span, started time.Time, res rop.Result[T]) {
	b.manager.Unregister(id)

	elapsed := time.Since(started)
	actionsInFlight.WithLabelValues(b.kind).Dec()
	actionDuration.WithLabelValues(b.kind).Observe(elapsed.Seconds())

	outcome := solo.Finally(context.Background(), res,
		func(context.Context, T) string { return outcomeSucceeded },
		func(context.Context, error) string { return outcomeFailed },
		func(context.Context, error) string { return outcomeCancelled })
	actionsTotal.WithLabelValues(b.kind, name, outcome).Inc()

	attrs := []any{
		slog.Uint64("id", uint64(id)),
		slog.String("plugin", name),
		slog.String("outcome", outcome),
		slog.Duration("elapsed", elapsed),
	}
	if res.IsSuccess() {
		span.SetStatus(codes.Ok, "")
		b.logger.Info("action finished", attrs...)
	} else {
		span.RecordError(res.Err())
		span.SetStatus(codes.Error, res.Message())
		b.logger.Warn("action failed", append(attrs,
			slog.String("kind", res.Kind().String()),
			slog.String("error", res.Message()))...)
	}
	span.End()

	b.mu.RLock()
	handlers := make([]Handlers[T], len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	solo.DoubleTee(context.Background(), res,
		func(_ context.Context, out T) {
			for _, h := range handlers {
				if h.OnFinished != nil {
					h.OnFinished(out)
				}
			}
		},
		func(_ context.Context, err error) { notifyError(handlers, err) },
		func(_ context.Context, err error) { notifyError(handlers, err) })

	b.busy.Store(false)
}

func notifyError[T any](handlers []Handlers[T], err error) {
	for _, h := range handlers {
		if h.OnError != nil {
			h.OnError(err)
		}
	}
}
