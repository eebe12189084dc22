//go:build linux

package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcp/core/concurrency"
	"github.com/momentics/hioload-tcp/server"
	"github.com/momentics/hioload-tcp/transport/tcp"
)

// exhaustDescriptors lowers RLIMIT_NOFILE and opens /dev/null until the
// table is full. It returns the filler descriptors; the caller closes them.
func exhaustDescriptors(t *testing.T, limit uint64) []int {
	t.Helper()
	var saved unix.Rlimit
	require.NoError(t, unix.Getrlimit(unix.RLIMIT_NOFILE, &saved))
	if saved.Cur < limit {
		limit = saved.Cur
	}
	lowered := unix.Rlimit{Cur: limit, Max: saved.Max}
	require.NoError(t, unix.Setrlimit(unix.RLIMIT_NOFILE, &lowered))
	t.Cleanup(func() { _ = unix.Setrlimit(unix.RLIMIT_NOFILE, &saved) })

	var fds []int
	for {
		fd, err := unix.Open("/dev/null", unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err == unix.EMFILE {
			return fds
		}
		require.NoError(t, err)
		fds = append(fds, fd)
	}
}

func TestServer_AcceptFailuresBackOff(t *testing.T) {
	defer goleak.VerifyNone(t)

	const poll = 50 * time.Millisecond
	q := concurrency.NewGrowableQueue[*tcp.Connection]()
	m := &countingMetrics{}
	s, err := server.New(0, server.WithPollInterval(poll), server.WithBacklog(4), server.WithMetrics(m))
	require.NoError(t, err)
	require.NoError(t, s.Start(q))

	fillers := exhaustDescriptors(t, 256)
	require.NotEmpty(t, fillers)
	closeFillers := func() {
		for _, fd := range fillers {
			_ = unix.Close(fd)
		}
		fillers = nil
	}
	defer closeFillers()

	// One free slot for the client socket; the server's accept then hits EMFILE.
	require.NoError(t, unix.Close(fillers[len(fillers)-1]))
	fillers = fillers[:len(fillers)-1]
	c := tcp.NewConnection(loopback(s))
	require.NoError(t, c.Open())
	defer c.Terminate()

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, m.accepted.Load(), "accept must not succeed while the table is full")
	failed := m.failed.Load()
	assert.GreaterOrEqual(t, failed, int64(1))
	assert.LessOrEqual(t, failed, int64(10), "accept failures in 200ms with a %s poll interval", poll)

	// With descriptors available again the pending connection is accepted.
	closeFillers()
	require.Eventually(t, func() bool { return q.Len() == 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Shutdown())
	for _, conn := range q.Drain() {
		require.NoError(t, conn.Terminate())
	}
}
