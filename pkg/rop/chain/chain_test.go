package chain

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ib-77/bitbench/pkg/rop"
)

func TestFromValue(t *testing.T) {
	t.Parallel()

	c := FromValue(context.Background(), 7)
	assert.True(t, c.Result().IsSuccess())
	assert.Equal(t, 7, c.Result().Result())
	assert.NoError(t, c.Err())
}

func TestThen_ShortCircuitsOnFailure(t *testing.T) {
	t.Parallel()

	c := Start(context.Background(), rop.Fail[int](errors.New("boom")))
	called := false
	out := Then(c, func(context.Context, int) rop.Result[string] {
		called = true
		return rop.Success("ok")
	})

	assert.False(t, called)
	assert.EqualError(t, out.Err(), "boom")
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	var seen []int
	c := FromValue(context.Background(), "12")
	n := ThenTry(c, func(_ context.Context, s string) (int, error) { return strconv.Atoi(s) })
	n = n.Check(func(_ context.Context, v int) (bool, string) { return v > 0, "must be positive" })
	n = n.Ensure(func(_ context.Context, v int) { seen = append(seen, v) })
	doubled := Map(n, func(_ context.Context, v int) int { return v * 2 })

	assert.Equal(t, 24, doubled.Result().Result())
	assert.Equal(t, []int{12}, seen)
}

func TestCheck_ProducesValidationError(t *testing.T) {
	t.Parallel()

	c := FromValue(context.Background(), -1).
		Check(func(_ context.Context, v int) (bool, string) { return v >= 0, "negative input" }).
		Ensure(func(context.Context, int) { t.Fatal("Ensure must not run after a failure") })

	assert.Equal(t, rop.KindValidation, rop.KindOf(c.Err()))
	assert.EqualError(t, c.Err(), "negative input")
}

func TestFinally(t *testing.T) {
	t.Parallel()

	label := func(c *Chain[int]) string {
		return Finally(c,
			func(context.Context, int) string { return "ok" },
			func(context.Context, error) string { return "failed" },
			func(context.Context, error) string { return "cancelled" })
	}
	ctx := context.Background()
	assert.Equal(t, "ok", label(FromValue(ctx, 1)))
	assert.Equal(t, "failed", label(Start(ctx, rop.Fail[int](errors.New("x")))))
	assert.Equal(t, "cancelled", label(Start(ctx, rop.Cancel[int](nil))))
}
