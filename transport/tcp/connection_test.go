package tcp

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcp/api"
	"github.com/momentics/hioload-tcp/internal/transport"
)

// acceptOne listens on an ephemeral loopback port and returns the listener's
// endpoint plus a channel yielding the first accepted connection.
func acceptOne(t *testing.T) (Endpoint, <-chan *Connection) {
	t.Helper()
	ln, err := transport.Listen(0, 1, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = transport.Close(ln) })
	local, err := transport.LocalAddr(ln)
	require.NoError(t, err)

	out := make(chan *Connection, 1)
	go func() {
		ready, err := transport.PollReadable(ln, 5*time.Second)
		if err != nil || !ready {
			close(out)
			return
		}
		fd, peer, err := transport.Accept(ln)
		if err != nil {
			close(out)
			return
		}
		ep, _ := EndpointFromAddrPort(peer)
		out <- Adopt(fd, ep)
	}()
	return NewEndpoint(0x7f000001, local.Port()), out
}

func TestConnection_InactiveOperations(t *testing.T) {
	c := NewConnection(NewEndpoint(0x7f000001, 1))
	assert.False(t, c.Active())

	err := c.SendMessage(MessageFromString("x"))
	assert.ErrorIs(t, err, api.ErrInactiveConnection)
	_, err = c.ReceiveMessage()
	assert.ErrorIs(t, err, api.ErrInactiveConnection)

	assert.NoError(t, c.DisableSend())
	assert.NoError(t, c.DisableReceive())
	assert.NoError(t, c.Terminate())
	assert.Contains(t, c.String(), "inactive")
}

func TestConnection_OpenRefusedStaysUnopened(t *testing.T) {
	ln, err := transport.Listen(0, 1, true)
	require.NoError(t, err)
	local, err := transport.LocalAddr(ln)
	require.NoError(t, err)
	require.NoError(t, transport.Close(ln))

	c := NewConnection(NewEndpoint(0x7f000001, local.Port()))
	err = c.Open()
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrSystem)
	assert.ErrorIs(t, err, unix.ECONNREFUSED)
	assert.False(t, c.Active())
}

func TestConnection_EchoOverLoopback(t *testing.T) {
	target, accepted := acceptOne(t)

	client := NewConnection(target)
	require.NoError(t, client.Open())
	require.True(t, client.Active())
	require.NoError(t, client.Open(), "Open on an open connection is a no-op")
	defer client.Terminate()

	server := <-accepted
	require.NotNil(t, server)
	defer server.Terminate()
	assert.Equal(t, "127.0.0.1", server.Peer().Host())

	payload := make([]byte, 43283)
	rand.New(rand.NewSource(7)).Read(payload)
	msg := NewMessageBuffer(payload)

	errc := make(chan error, 1)
	go func() {
		if err := client.SendMessage(msg); err != nil {
			errc <- err
			return
		}
		errc <- client.DisableSend()
	}()

	got, err := server.ReceiveMessage()
	require.NoError(t, err)
	require.NoError(t, <-errc)
	require.True(t, got.Equal(msg))

	require.NoError(t, server.SendMessage(got))
	require.NoError(t, server.DisableSend())

	back, err := client.ReceiveMessage()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, back.Bytes()))
}

func TestConnection_EmptyMessage(t *testing.T) {
	target, accepted := acceptOne(t)

	client := NewConnection(target)
	require.NoError(t, client.Open())
	defer client.Terminate()
	server := <-accepted
	require.NotNil(t, server)
	defer server.Terminate()

	require.NoError(t, client.DisableSend())
	got, err := server.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestConnection_TerminateThenSendFails(t *testing.T) {
	target, accepted := acceptOne(t)

	client := NewConnection(target)
	require.NoError(t, client.Open())
	server := <-accepted
	require.NotNil(t, server)
	defer server.Terminate()

	require.NoError(t, client.Terminate())
	assert.False(t, client.Active())
	assert.NoError(t, client.Terminate())
	assert.ErrorIs(t, client.SendMessage(MessageFromString("late")), api.ErrInactiveConnection)

	// the peer observes end-of-stream
	got, err := server.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}
