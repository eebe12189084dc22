// control/queue.go
// Author: momentics <momentics@gmail.com>
//
// Builds the connection queue selected by WorkersConfig.

package control

import (
	"context"

	"github.com/momentics/hioload-tcp/api"
	"github.com/momentics/hioload-tcp/core/concurrency"
)

// WorkQueue is the queue surface workers need: the api.Queue contract plus
// cancellable pops and draining at shutdown.
type WorkQueue[T any] interface {
	api.Queue[T]
	PopContext(ctx context.Context) (T, error)
	Drain() []T
	Cap() int
}

// NewQueue returns a BlockingQueue or GrowableQueue per w.QueueKind.
func NewQueue[T any](w WorkersConfig) (WorkQueue[T], error) {
	switch w.QueueKind {
	case QueueBounded:
		q, err := concurrency.NewBlockingQueue[T](w.QueueCapacity)
		if err != nil {
			return nil, err
		}
		return q, nil
	case QueueGrowable:
		return concurrency.NewGrowableQueueSize[T](w.QueueCapacity), nil
	default:
		return nil, api.InvalidArgument("unknown queue kind %q", w.QueueKind)
	}
}
