// Package api
// Author: momentics <momentics@gmail.com>
//
// Blocking FIFO contracts for cross-goroutine hand-off.

package api

import "time"

// Pusher is the producer side of a queue. The server's acceptor only needs this.
type Pusher[T any] interface {
	// Push enqueues item, blocking while the queue has no room.
	Push(item T)
}

// TimedPusher is a Pusher that can give up after a timeout.
type TimedPusher[T any] interface {
	Pusher[T]
	// PushTimeout enqueues item unless no room appears within timeout.
	// Returns false if the item was not queued.
	PushTimeout(item T, timeout time.Duration) bool
}

// Queue is a thread-safe FIFO shared by producers and consumers.
type Queue[T any] interface {
	Pusher[T]
	// Pop removes the oldest item, blocking while the queue is empty.
	Pop() T
	// Len returns the current number of items.
	Len() int
	// Empty reports whether Len() == 0.
	Empty() bool
}
