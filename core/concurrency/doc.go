// File: core/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocking hand-off queues for hioload-tcp.
//
// BlockingQueue is bounded and applies backpressure to producers; it offers
// plain, timed and context-aware variants of Push and Pop. GrowableQueue
// never blocks producers and doubles its storage on overflow. Both keep
// strict FIFO order and guard all state with a single mutex per instance.
package concurrency
