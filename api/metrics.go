// Package api
// Author: momentics <momentics@gmail.com>
//
// Metrics hooks reported by the acceptor loop.

package api

import "time"

// ServerMetrics receives acceptor loop events. Implementations must be safe
// for concurrent use.
type ServerMetrics interface {
	// ConnectionAccepted counts a connection returned by accept(2).
	ConnectionAccepted()
	// AcceptFailed counts a failed accept(2) call.
	AcceptFailed()
	// ConnectionDropped counts an accepted connection terminated at shutdown
	// before it could be queued.
	ConnectionDropped()
	// ObservePushWait records how long the acceptor waited on the queue.
	ObservePushWait(d time.Duration)
	// SetRunning flips the running gauge.
	SetRunning(running bool)
}

// NoopServerMetrics discards everything.
type NoopServerMetrics struct{}

func (NoopServerMetrics) ConnectionAccepted()           {}
func (NoopServerMetrics) AcceptFailed()                 {}
func (NoopServerMetrics) ConnectionDropped()            {}
func (NoopServerMetrics) ObservePushWait(time.Duration) {}
func (NoopServerMetrics) SetRunning(bool)               {}
