package rop

import (
	"time"

	"github.com/google/uuid"
)

// Result is the terminal outcome of an action: either a payload or an error
// tagged with its Kind. An error result never carries a payload.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
	hasResult bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		hasResult: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Fail builds a failed result. Errors that are not already a *Error are
// tagged as computation failures.
func Fail[T any](err error) Result[T] {
	if KindOf(err) == KindNone {
		err = Computation(err)
	}
	return Result[T]{
		err:       err,
		isCancel:  KindOf(err) == KindCancellation,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Cancel builds a cancelled result. A nil err is replaced by ErrCancelled.
func Cancel[T any](err error) Result[T] {
	switch {
	case err == nil:
		err = ErrCancelled
	case KindOf(err) != KindCancellation:
		err = &Error{Kind: KindCancellation, Message: err.Error(), Err: err}
	}
	return Result[T]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Invalid builds a failed result tagged as a validation error.
func Invalid[T any](err error) Result[T] {
	if KindOf(err) != KindValidation {
		err = &Error{Kind: KindValidation, Message: errMessage(err), Err: err}
	}
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// CancelFrom carries the error side of a result over to another payload type.
func CancelFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{
		err:       from.err,
		isSuccess: false,
		isCancel:  from.isCancel,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && r.err != nil
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) HasResult() bool {
	return r.hasResult
}

// Kind reports KindNone for successful results.
func (r Result[T]) Kind() Kind {
	if r.isSuccess {
		return KindNone
	}
	return KindOf(r.err)
}

// Message is the user-facing error text, empty on success.
func (r Result[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return errMessage(r.err)
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isCancel && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
