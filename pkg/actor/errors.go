package actor

import "errors"

// ErrBusy is returned by Act while the actor's previous invocation has not
// delivered its notification yet.
var ErrBusy = errors.New("actor: an action is already in flight")
