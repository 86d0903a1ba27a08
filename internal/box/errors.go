package box

import "errors"

// ErrBoxUnreachable is wrapped into a Result when a speaker cannot be
// reached at the transport level (timeout, connection refused, DNS failure).
var ErrBoxUnreachable = errors.New("box: unreachable")
