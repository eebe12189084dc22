// File: core/concurrency/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ring is the unsynchronized circular store shared by the blocking queues.
// Callers hold the owning queue's mutex around every method.

package concurrency

// ring keeps a FIFO window [start, start+size) over buf, indices mod len(buf).
// Invariant: end == (start + size) % len(buf).
type ring[T any] struct {
	buf   []T
	start int
	end   int
	size  int
}

func newRing[T any](capacity int) ring[T] {
	return ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) full() bool { return r.size == len(r.buf) }

func (r *ring[T]) empty() bool { return r.size == 0 }

// put inserts at end. The caller guarantees !full().
func (r *ring[T]) put(item T) {
	r.buf[r.end] = item
	r.end = (r.end + 1) % len(r.buf)
	r.size++
}

// take removes from start. The caller guarantees !empty().
// The vacated slot is zeroed so the ring does not pin popped values.
func (r *ring[T]) take() T {
	var zero T
	item := r.buf[r.start]
	r.buf[r.start] = zero
	r.start = (r.start + 1) % len(r.buf)
	r.size--
	return item
}

// grow doubles the storage, copying live elements in logical order to index 0.
func (r *ring[T]) grow() {
	next := make([]T, 2*len(r.buf))
	for i := 0; i < r.size; i++ {
		next[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	r.buf = next
	r.start = 0
	r.end = r.size
}

// drain removes every element in FIFO order.
func (r *ring[T]) drain() []T {
	out := make([]T, 0, r.size)
	for !r.empty() {
		out = append(out, r.take())
	}
	return out
}
