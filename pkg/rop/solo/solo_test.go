package solo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/bitbench/pkg/rop"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	positive := func(_ context.Context, v int) (bool, string) {
		if v <= 0 {
			return false, "value must be positive"
		}
		return true, ""
	}

	ok := Validate(ctx, 3, positive)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, 3, ok.Result())

	bad := Validate(ctx, -1, positive)
	assert.Equal(t, rop.KindValidation, bad.Kind())
	assert.Equal(t, "value must be positive", bad.Message())
}

func TestAndValidate_PassesFailuresThrough(t *testing.T) {
	t.Parallel()

	called := false
	in := rop.Cancel[int](nil)
	out := AndValidate(context.Background(), in, func(context.Context, int) (bool, string) {
		called = true
		return true, ""
	})

	assert.False(t, called)
	assert.True(t, out.IsCancel())
}

func TestSwitch_KeepsErrorKind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	out := Switch(ctx, rop.Cancel[int](nil), func(context.Context, int) rop.Result[string] {
		t.Fatal("onSuccess must not run on a cancelled input")
		return rop.Success("")
	})
	assert.True(t, out.IsCancel())

	ok := Switch(ctx, rop.Success(2), func(_ context.Context, v int) rop.Result[string] {
		return rop.Success("two")
	})
	assert.Equal(t, "two", ok.Result())
}

func TestMap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	out := Map(ctx, rop.Success(21), func(_ context.Context, v int) int { return v * 2 })
	assert.Equal(t, 42, out.Result())

	failed := Map(ctx, rop.Fail[int](errors.New("boom")), func(_ context.Context, v int) int { return v })
	assert.Equal(t, rop.KindComputation, failed.Kind())
}

func TestTry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	out := Try(ctx, rop.Success(4), func(_ context.Context, v int) (int, error) {
		return 0, errors.New("nope")
	})
	assert.True(t, out.IsFailure())
	assert.Equal(t, "nope", out.Message())
}

func TestFinallyAndDoubleTee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	label := func(r rop.Result[int]) string {
		return Finally(ctx, r,
			func(context.Context, int) string { return "ok" },
			func(context.Context, error) string { return "error" },
			func(context.Context, error) string { return "cancel" })
	}
	assert.Equal(t, "ok", label(rop.Success(1)))
	assert.Equal(t, "error", label(rop.Fail[int](errors.New("x"))))
	assert.Equal(t, "cancel", label(rop.Cancel[int](nil)))

	var seen []string
	DoubleTee(ctx, rop.Cancel[int](nil),
		func(context.Context, int) { seen = append(seen, "ok") },
		func(context.Context, error) { seen = append(seen, "error") },
		func(context.Context, error) { seen = append(seen, "cancel") })
	assert.Equal(t, []string{"cancel"}, seen)
}

func TestProtect_RecoversPanics(t *testing.T) {
	t.Parallel()

	res := Protect(func() rop.Result[int] {
		var zero int
		return rop.Success(10 / zero)
	})
	require.True(t, res.IsFailure())
	assert.Equal(t, rop.KindComputation, res.Kind())
	assert.Contains(t, res.Message(), "computation panicked")

	var rerr runtimeError
	assert.ErrorAs(t, res.Err(), &rerr)
}

func TestProtect_StringPanic(t *testing.T) {
	t.Parallel()

	res := Protect(func() rop.Result[int] { panic("bits: write to frozen array") })
	assert.Equal(t, rop.KindComputation, res.Kind())
	assert.Contains(t, res.Message(), "frozen")
}

func TestProtect_PassesResultsThrough(t *testing.T) {
	t.Parallel()

	res := Protect(func() rop.Result[int] { return rop.Success(7) })
	assert.Equal(t, 7, res.Result())
}

type runtimeError interface {
	error
	RuntimeError()
}
