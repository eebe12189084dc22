// File: core/concurrency/growable_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// GrowableQueue is an unbounded ring buffer: pushes never block and the
// storage doubles when full. Pops block while empty. Capacity never shrinks.

package concurrency

import (
	"context"
	"sync"

	"github.com/momentics/hioload-tcp/api"
)

// DefaultGrowableCapacity is the initial storage size of NewGrowableQueue.
const DefaultGrowableCapacity = 8

var _ api.Queue[any] = (*GrowableQueue[any])(nil)

// GrowableQueue is an unbounded FIFO safe for concurrent use.
type GrowableQueue[T any] struct {
	mu       sync.Mutex
	notEmpty sync.Cond
	r        ring[T]
}

// NewGrowableQueue returns an empty queue with DefaultGrowableCapacity slots.
func NewGrowableQueue[T any]() *GrowableQueue[T] {
	return NewGrowableQueueSize[T](DefaultGrowableCapacity)
}

// NewGrowableQueueSize returns an empty queue with the given initial capacity.
// Non-positive values fall back to DefaultGrowableCapacity.
func NewGrowableQueueSize[T any](capacity int) *GrowableQueue[T] {
	if capacity <= 0 {
		capacity = DefaultGrowableCapacity
	}
	q := &GrowableQueue[T]{r: newRing[T](capacity)}
	q.notEmpty.L = &q.mu
	return q
}

// Push enqueues item, doubling the storage first if it is full.
// Growth happens under the queue lock, so it is atomic to every other operation.
func (q *GrowableQueue[T]) Push(item T) {
	q.mu.Lock()
	if q.r.full() {
		q.r.grow()
	}
	q.r.put(item)
	q.notEmpty.Signal()
	q.mu.Unlock()
}

// Pop removes the oldest item, blocking indefinitely while the queue is empty.
func (q *GrowableQueue[T]) Pop() T {
	q.mu.Lock()
	for q.r.empty() {
		q.notEmpty.Wait()
	}
	item := q.r.take()
	q.mu.Unlock()
	return item
}

// PopContext removes the oldest item, or returns ctx.Err() once ctx is done.
func (q *GrowableQueue[T]) PopContext(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := waitContext(ctx, &q.mu, &q.notEmpty, func() bool { return !q.r.empty() }); err != nil {
		var zero T
		return zero, err
	}
	return q.r.take(), nil
}

// Len returns the number of queued items.
func (q *GrowableQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.r.size
}

// Empty reports whether the queue holds no items.
func (q *GrowableQueue[T]) Empty() bool {
	return q.Len() == 0
}

// Cap returns the current storage capacity.
func (q *GrowableQueue[T]) Cap() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.r.buf)
}

// Drain removes and returns all queued items in FIFO order.
func (q *GrowableQueue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.r.drain()
}
