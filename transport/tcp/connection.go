// File: transport/tcp/connection.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Connection owns one stream socket and moves single messages framed by
// half-close over it.

package tcp

import (
	"github.com/momentics/hioload-tcp/api"
	"github.com/momentics/hioload-tcp/internal/transport"
	"github.com/momentics/hioload-tcp/pool"
)

// ReceiveGrowThreshold is the free space at or below which the receive
// buffer doubles before the next read.
const ReceiveGrowThreshold = 32

const noSocket = -1

// Connection is a stream socket plus the remote endpoint. It is owned by one
// goroutine at a time; handing it through a queue transfers ownership.
//
// States: unopened (client side, no socket), open, terminated. Accepted
// connections start open.
type Connection struct {
	fd   int
	peer Endpoint
}

// NewConnection returns an unopened client connection to target.
func NewConnection(target Endpoint) *Connection {
	return &Connection{fd: noSocket, peer: target}
}

// Adopt wraps a connected socket accepted by a listener. The Connection takes
// ownership of fd.
func Adopt(fd int, peer Endpoint) *Connection {
	return &Connection{fd: fd, peer: peer}
}

// Open connects to the target if no socket is held. Calling Open on an open
// connection does nothing. After a failed connect the connection stays
// unopened and Open may be retried.
func (c *Connection) Open() error {
	if c.fd != noSocket {
		return nil
	}
	fd, err := transport.Connect(c.peer.AddrPort())
	if err != nil {
		return err
	}
	c.fd = fd
	return nil
}

// Terminate closes the socket. The connection is inactive afterwards even if
// close reports an error.
func (c *Connection) Terminate() error {
	if c.fd == noSocket {
		return nil
	}
	fd := c.fd
	c.fd = noSocket
	return transport.Close(fd)
}

// DisableSend half-closes the sending direction; the peer reads end-of-stream.
// The connection stays active and can still receive. On a connection without
// a socket it does nothing and returns nil, unlike SendMessage.
func (c *Connection) DisableSend() error {
	if c.fd == noSocket {
		return nil
	}
	return transport.Shutdown(c.fd, transport.ShutWrite)
}

// DisableReceive half-closes the receiving direction. On a connection
// without a socket it does nothing and returns nil.
func (c *Connection) DisableReceive() error {
	if c.fd == noSocket {
		return nil
	}
	return transport.Shutdown(c.fd, transport.ShutRead)
}

// Active reports whether a socket is held.
func (c *Connection) Active() bool { return c.fd != noSocket }

// Peer returns the remote endpoint: the accepted peer or the connect target.
func (c *Connection) Peer() Endpoint { return c.peer }

// SendMessage writes every byte of m. It does not disable sending; call
// DisableSend to mark the end of the message.
func (c *Connection) SendMessage(m MessageBuffer) error {
	if c.fd == noSocket {
		return api.InactiveConnection("send message").WithContext("peer", c.peer.String())
	}
	return transport.WriteAll(c.fd, m.Bytes())
}

// ReceiveMessage reads until the peer disables sending and returns the bytes
// as one message. It blocks until end-of-stream or an error.
func (c *Connection) ReceiveMessage() (MessageBuffer, error) {
	if c.fd == noSocket {
		return MessageBuffer{}, api.InactiveConnection("receive message").WithContext("peer", c.peer.String())
	}
	s := pool.Default().Get()
	defer s.Release()
	for {
		n, err := transport.Read(c.fd, s.Reserve(ReceiveGrowThreshold))
		if err != nil {
			return MessageBuffer{}, err
		}
		if n == 0 {
			break
		}
		s.Advance(n)
	}
	return NewMessageBuffer(s.Bytes()), nil
}

func (c *Connection) String() string {
	state := "inactive"
	if c.Active() {
		state = "active"
	}
	return "tcp(" + c.peer.String() + ", " + state + ")"
}
