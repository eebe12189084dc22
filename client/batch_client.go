// File: client/batch_client.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrent one-shot exchanges against a single target, as used by load
// generators.

package client

import (
	"context"
	"sync"
	"time"

	"github.com/momentics/hioload-tcp/transport/tcp"
)

// Result is the outcome of one exchange in a batch.
type Result struct {
	Request tcp.MessageBuffer
	Reply   tcp.MessageBuffer
	Elapsed time.Duration
	Err     error
}

// RunBatch dials target once per message, concurrently, and exchanges each
// message on its own connection. Results are returned in input order.
func RunBatch(ctx context.Context, target tcp.Endpoint, msgs []tcp.MessageBuffer, cfg Config) []Result {
	results := make([]Result, len(msgs))
	var wg sync.WaitGroup
	for i := range msgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = exchangeOnce(ctx, target, msgs[i], cfg)
		}(i)
	}
	wg.Wait()
	return results
}

func exchangeOnce(ctx context.Context, target tcp.Endpoint, msg tcp.MessageBuffer, cfg Config) Result {
	start := time.Now()
	res := Result{Request: msg}
	conn, err := Dial(ctx, target, cfg)
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		return res
	}
	defer conn.Terminate()
	res.Reply, res.Err = Exchange(conn, msg)
	res.Elapsed = time.Since(start)
	return res
}

// Echoed reports whether the reply matches the request byte for byte.
func (r Result) Echoed() bool {
	return r.Err == nil && r.Reply.Equal(r.Request)
}
