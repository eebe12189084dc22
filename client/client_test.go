// File: client/client_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcp/api"
	"github.com/momentics/hioload-tcp/client"
	"github.com/momentics/hioload-tcp/core/concurrency"
	"github.com/momentics/hioload-tcp/server"
	"github.com/momentics/hioload-tcp/transport/tcp"
)

func fastRetry(attempts int) client.Config {
	cfg := client.DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.MinBackoff = 5 * time.Millisecond
	cfg.MaxBackoff = 20 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

// closedPort returns a loopback endpoint on which nothing listens.
func closedPort(t *testing.T) tcp.Endpoint {
	t.Helper()
	s, err := server.New(0)
	require.NoError(t, err)
	q := concurrency.NewGrowableQueue[*tcp.Connection]()
	require.NoError(t, s.Start(q))
	port := s.Endpoint().Port()
	require.NoError(t, s.Shutdown())
	return tcp.NewEndpoint(0x7f000001, port)
}

// startEcho runs a server whose workers echo every message.
func startEcho(t *testing.T, workers int) *server.Server {
	t.Helper()
	q, err := concurrency.NewBlockingQueue[*tcp.Connection](workers)
	require.NoError(t, err)
	s, err := server.New(0, server.WithBacklog(16))
	require.NoError(t, err)
	require.NoError(t, s.Start(q))

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				conn, err := q.PopContext(ctx)
				if err != nil {
					return
				}
				if msg, err := conn.ReceiveMessage(); err == nil {
					_ = conn.SendMessage(msg)
					_ = conn.DisableSend()
				}
				_ = conn.Terminate()
			}
		}()
	}
	t.Cleanup(func() {
		require.NoError(t, s.Shutdown())
		cancel()
		wg.Wait()
		for _, c := range q.Drain() {
			_ = c.Terminate()
		}
	})
	return s
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, client.DefaultConfig().Validate())

	bad := client.DefaultConfig()
	bad.MaxAttempts = 0
	assert.ErrorIs(t, bad.Validate(), api.ErrInvalidArgument)

	bad = client.DefaultConfig()
	bad.MaxBackoff = bad.MinBackoff / 2
	assert.ErrorIs(t, bad.Validate(), api.ErrInvalidArgument)

	bad = client.DefaultConfig()
	bad.Factor = 0.5
	assert.ErrorIs(t, bad.Validate(), api.ErrInvalidArgument)
}

func TestDial_GivesUpAfterMaxAttempts(t *testing.T) {
	defer goleak.VerifyNone(t)
	target := closedPort(t)

	start := time.Now()
	conn, err := client.Dial(context.Background(), target, fastRetry(3))
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, api.ErrSystem)
	assert.ErrorIs(t, err, unix.ECONNREFUSED)
	// two sleeps between three attempts
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestDial_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	target := closedPort(t)

	cfg := fastRetry(1000)
	cfg.MinBackoff = 50 * time.Millisecond
	cfg.MaxBackoff = 50 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	_, err := client.Dial(ctx, target, cfg)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDial_RejectsInvalidConfig(t *testing.T) {
	_, err := client.Dial(context.Background(), tcp.NewEndpoint(0x7f000001, 1), client.Config{})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestExchange_Echo(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })
	s := startEcho(t, 2)

	conn, err := client.Dial(context.Background(), tcp.NewEndpoint(0x7f000001, s.Endpoint().Port()), fastRetry(3))
	require.NoError(t, err)
	defer conn.Terminate()

	reply, err := client.Exchange(conn, tcp.MessageFromString("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", reply.Text())
	assert.Equal(t, 6, reply.Len())
}

func TestRunBatch_AllEchoed(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })
	s := startEcho(t, 4)

	msgs := make([]tcp.MessageBuffer, 8)
	for i := range msgs {
		msgs[i] = tcp.NewMessageBuffer([]byte{byte(i), byte(i * 3), byte(i * 7)})
	}
	results := client.RunBatch(context.Background(),
		tcp.NewEndpoint(0x7f000001, s.Endpoint().Port()), msgs, fastRetry(5))

	require.Len(t, results, len(msgs))
	for i, r := range results {
		require.NoError(t, r.Err, "exchange %d", i)
		assert.True(t, r.Echoed(), "exchange %d", i)
		assert.True(t, r.Request.Equal(msgs[i]))
	}
}
