// File: core/concurrency/wait.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Predicate waits on sync.Cond with deadline and context support.

package concurrency

import (
	"context"
	"sync"
	"time"
)

// waitFor blocks on c until ready() holds or the deadline passes.
// mu must be held by the caller and be c.L. The predicate is checked before
// the deadline on every wake-up, so a late waiter that finds work takes it.
func waitFor(mu *sync.Mutex, c *sync.Cond, deadline time.Time, ready func() bool) bool {
	if ready() {
		return true
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}
	// Broadcast under mu so the wake-up cannot slip in between the
	// deadline check and c.Wait().
	t := time.AfterFunc(remaining, func() {
		mu.Lock()
		c.Broadcast()
		mu.Unlock()
	})
	defer t.Stop()

	for !ready() {
		if !time.Now().Before(deadline) {
			return false
		}
		c.Wait()
	}
	return true
}

// waitContext blocks on c until ready() holds or ctx is done.
func waitContext(ctx context.Context, mu *sync.Mutex, c *sync.Cond, ready func() bool) error {
	if ready() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		mu.Lock()
		c.Broadcast()
		mu.Unlock()
	})
	defer stop()

	for !ready() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Wait()
	}
	return nil
}
