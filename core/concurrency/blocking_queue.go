// File: core/concurrency/blocking_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BlockingQueue is a bounded, mutex-guarded ring buffer with blocking and
// timed push/pop. It is the admission-control queue between an acceptor and
// its workers: a full queue stalls the producer.

package concurrency

import (
	"context"
	"sync"
	"time"

	"github.com/momentics/hioload-tcp/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Queue[any]       = (*BlockingQueue[any])(nil)
	_ api.TimedPusher[any] = (*BlockingQueue[any])(nil)
)

// BlockingQueue is a fixed-capacity FIFO safe for any number of producers and consumers.
type BlockingQueue[T any] struct {
	mu       sync.Mutex
	notEmpty sync.Cond // signalled after put
	notFull  sync.Cond // signalled after take
	r        ring[T]
}

// NewBlockingQueue allocates a queue holding at most capacity items.
func NewBlockingQueue[T any](capacity int) (*BlockingQueue[T], error) {
	if capacity <= 0 {
		return nil, api.InvalidArgument("queue capacity must be positive, got %d", capacity)
	}
	q := &BlockingQueue[T]{r: newRing[T](capacity)}
	q.notEmpty.L = &q.mu
	q.notFull.L = &q.mu
	return q, nil
}

// Push enqueues item, blocking while the queue is full.
func (q *BlockingQueue[T]) Push(item T) {
	q.mu.Lock()
	for q.r.full() {
		q.notFull.Wait()
	}
	q.put(item)
	q.mu.Unlock()
}

// PushTimeout enqueues item unless the queue stays full for timeout.
// On false the item was not queued.
func (q *BlockingQueue[T]) PushTimeout(item T, timeout time.Duration) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !waitFor(&q.mu, &q.notFull, time.Now().Add(timeout), q.hasRoom) {
		return false
	}
	q.put(item)
	return true
}

// Pop removes the oldest item, blocking while the queue is empty.
func (q *BlockingQueue[T]) Pop() T {
	q.mu.Lock()
	for q.r.empty() {
		q.notEmpty.Wait()
	}
	item := q.take()
	q.mu.Unlock()
	return item
}

// PopTimeout removes the oldest item, or returns false if the queue stays
// empty for timeout.
func (q *BlockingQueue[T]) PopTimeout(timeout time.Duration) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !waitFor(&q.mu, &q.notEmpty, time.Now().Add(timeout), q.hasItems) {
		var zero T
		return zero, false
	}
	return q.take(), true
}

// PopContext removes the oldest item, or returns ctx.Err() once ctx is done.
func (q *BlockingQueue[T]) PopContext(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := waitContext(ctx, &q.mu, &q.notEmpty, q.hasItems); err != nil {
		var zero T
		return zero, err
	}
	return q.take(), nil
}

// Len returns the number of queued items.
func (q *BlockingQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.r.size
}

// Empty reports whether the queue holds no items.
func (q *BlockingQueue[T]) Empty() bool {
	return q.Len() == 0
}

// Cap returns the fixed capacity.
func (q *BlockingQueue[T]) Cap() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.r.buf)
}

// Drain removes and returns all queued items in FIFO order and wakes every
// blocked producer.
func (q *BlockingQueue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.r.drain()
	q.notFull.Broadcast()
	return items
}

func (q *BlockingQueue[T]) hasRoom() bool  { return !q.r.full() }
func (q *BlockingQueue[T]) hasItems() bool { return !q.r.empty() }

func (q *BlockingQueue[T]) put(item T) {
	q.r.put(item)
	q.notEmpty.Signal()
}

func (q *BlockingQueue[T]) take() T {
	item := q.r.take()
	q.notFull.Signal()
	return item
}
