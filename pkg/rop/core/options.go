package core

import (
	"context"
	"time"
)

type OptionKey string

const (
	WorkerOptionKey   OptionKey = "worker_options"
	ProgressOptionKey OptionKey = "progress_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

type ProgressOptions struct {
	// Interval between two progress snapshots delivered to watchers.
	Interval time.Duration
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func WithProgressOptions(ctx context.Context, interval time.Duration) context.Context {
	return context.WithValue(ctx, ProgressOptionKey, ProgressOptions{Interval: interval})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func GetProgressInterval(ctx context.Context, defaultInterval time.Duration) time.Duration {
	options, ok := ctx.Value(ProgressOptionKey).(ProgressOptions)
	if ok && options.Interval > 0 {
		return options.Interval
	}
	return defaultInterval
}
