package action

import "errors"

var (
	// ErrAlreadyStarted is returned by Start on a watcher that is not pending.
	ErrAlreadyStarted = errors.New("action: watcher already started")

	// ErrNotReady is returned by Result before the computation has finished.
	ErrNotReady = errors.New("action: result not ready")

	// ErrNoResult is carried by the failure recorded when a computation
	// returns a zero rop.Result.
	ErrNoResult = errors.New("action: computation returned no result")
)
