package pool

import "sync"

// DefaultScratchSize is the starting capacity of receive buffers.
const DefaultScratchSize = 1024

var (
	defaultOnce sync.Once
	defaultPool *ScratchPool
)

// Default returns the process-wide receive buffer pool so all connections
// share recycled storage.
func Default() *ScratchPool {
	defaultOnce.Do(func() {
		defaultPool = NewScratchPool(DefaultScratchSize)
	})
	return defaultPool
}
