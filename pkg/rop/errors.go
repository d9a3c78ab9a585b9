package rop

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// Kind classifies why an action did not succeed.
type Kind int

const (
	KindNone Kind = iota
	// KindValidation: wrong input count or malformed configuration, detected
	// before anything is dispatched.
	KindValidation
	// KindCancellation: the computation observed a cancellation request.
	KindCancellation
	// KindComputation: any other failure inside the computation, panics included.
	KindComputation
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindCancellation:
		return "cancellation"
	case KindComputation:
		return "computation"
	default:
		return "unknown"
	}
}

// Error is an error tagged with a Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message, so sentinel
// values such as ErrCancelled work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// ErrCancelled is returned by computations that stopped on request.
var ErrCancelled = &Error{Kind: KindCancellation, Message: "Process cancelled"}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Cancelled(message string) error {
	if message == "" {
		return ErrCancelled
	}
	return &Error{Kind: KindCancellation, Message: message}
}

func Computation(err error) error {
	if err == nil {
		return &Error{Kind: KindComputation, Message: "computation failed"}
	}
	return &Error{Kind: KindComputation, Message: err.Error(), Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain. Context
// cancellation errors count as KindCancellation.
func KindOf(err error) Kind {
	if IsNil(err) {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancellation
	}
	return KindNone
}

func IsNil(i interface{}) bool {
	if i == nil || (reflect.ValueOf(i).Kind() == reflect.Ptr && reflect.ValueOf(i).IsNil()) {
		return true
	}
	return false
}

func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

func IsCancellationError(err error) bool {
	return KindOf(err) == KindCancellation
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
