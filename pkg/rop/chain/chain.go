package chain

import (
	"context"

	"github.com/ib-77/bitbench/pkg/rop"
	"github.com/ib-77/bitbench/pkg/rop/solo"
)

// Chain wraps a rop.Result with the context its steps receive.
type Chain[T any] struct {
	ctx    context.Context
	result rop.Result[T]
}

func Start[T any](ctx context.Context, result rop.Result[T]) *Chain[T] {
	return &Chain[T]{ctx: ctx, result: result}
}

func FromValue[T any](ctx context.Context, value T) *Chain[T] {
	return Start(ctx, rop.Success(value))
}

func (c *Chain[T]) Result() rop.Result[T] {
	return c.result
}

// Err returns nil when every step so far succeeded.
func (c *Chain[T]) Err() error {
	if c.result.IsSuccess() {
		return nil
	}
	return c.result.Err()
}

func Then[T, U any](c *Chain[T], onSuccess func(context.Context, T) rop.Result[U]) *Chain[U] {
	return Start(c.ctx, solo.Switch(c.ctx, c.result, onSuccess))
}

func ThenTry[T, U any](c *Chain[T], tryOnSuccess func(context.Context, T) (U, error)) *Chain[U] {
	return Start(c.ctx, solo.Try(c.ctx, c.result, tryOnSuccess))
}

func Map[T, U any](c *Chain[T], onSuccess func(context.Context, T) U) *Chain[U] {
	return Start(c.ctx, solo.Map(c.ctx, c.result, onSuccess))
}

// Check fails the chain with a validation error when validate rejects the
// current value.
func (c *Chain[T]) Check(validate func(ctx context.Context, in T) (valid bool, errMsg string)) *Chain[T] {
	return Start(c.ctx, solo.AndValidate(c.ctx, c.result, validate))
}

func (c *Chain[T]) Ensure(onSuccess func(context.Context, T)) *Chain[T] {
	return Start(c.ctx, solo.Tee(c.ctx, c.result, onSuccess))
}

func Finally[T, U any](c *Chain[T],
	onSuccess func(context.Context, T) U,
	onFailure func(context.Context, error) U,
	onCancel func(context.Context, error) U) U {
	return solo.Finally(c.ctx, c.result, onSuccess, onFailure, onCancel)
}
