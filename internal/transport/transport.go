// File: internal/transport/transport.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-independent helpers shared by the socket implementations.

package transport

import (
	"errors"
	"time"
)

// Shutdown directions accepted by Shutdown.
const (
	ShutRead  = iota // no further receives
	ShutWrite        // no further sends; the peer reads end-of-stream
)

// ErrNoPending reports a non-blocking accept that found no completed connection.
var ErrNoPending = errors.New("transport: no pending connection")

// pollMillis converts a poll timeout to the millisecond argument of poll(2).
// Negative durations block indefinitely; positive sub-millisecond durations
// round up so the caller never spins.
func pollMillis(d time.Duration) int {
	if d < 0 {
		return -1
	}
	ms := int(d / time.Millisecond)
	if ms == 0 && d > 0 {
		ms = 1
	}
	return ms
}
