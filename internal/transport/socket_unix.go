// File: internal/transport/socket_unix.go
//go:build linux || darwin || freebsd || netbsd || openbsd

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocking IPv4 stream sockets over golang.org/x/sys/unix.

package transport

import (
	"net/netip"
	"time"

	"github.com/momentics/hioload-tcp/api"
	"golang.org/x/sys/unix"
)

// Supported reports whether raw socket primitives are available on this platform.
const Supported = true

func newStreamSocket() (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return -1, api.SystemError("socket", err)
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

func sockaddr(addr netip.AddrPort) *unix.SockaddrInet4 {
	return &unix.SockaddrInet4{Port: int(addr.Port()), Addr: addr.Addr().As4()}
}

// Listen creates a socket bound to the IPv4 wildcard address on port and
// marks it passive. Each step that fails closes the socket and is reported
// with the step name as the operation.
func Listen(port, backlog int, reuseAddr bool) (int, error) {
	fd, err := newStreamSocket()
	if err != nil {
		return -1, err
	}
	if reuseAddr {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			_ = unix.Close(fd)
			return -1, api.SystemError("setsockopt SO_REUSEADDR", err)
		}
	}
	sa := &unix.SockaddrInet4{Port: port} // zero Addr is INADDR_ANY
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, api.SystemError("bind", err).WithContext("port", port)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return -1, api.SystemError("listen", err).WithContext("backlog", backlog)
	}
	// A peer may reset between readiness and accept; a non-blocking
	// listener reports that as ErrNoPending instead of stalling.
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, api.SystemError("set nonblock", err)
	}
	return fd, nil
}

// LocalAddr returns the address the socket is bound to.
func LocalAddr(fd int) (netip.AddrPort, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return netip.AddrPort{}, api.SystemError("getsockname", err)
	}
	return addrPortOf(sa)
}

// PollReadable waits up to timeout for fd to become readable.
// An interrupted wait reports false without error.
func PollReadable(fd int, timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, pollMillis(timeout))
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, api.SystemError("poll", err)
	}
	return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLERR|unix.POLLHUP) != 0, nil
}

// Accept takes one pending connection from a listening socket and returns
// its blocking descriptor and the peer address reported by the kernel.
// ErrNoPending is returned when the queue of completed connections is empty.
func Accept(fd int) (int, netip.AddrPort, error) {
	for {
		nfd, sa, err := unix.Accept(fd)
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return -1, netip.AddrPort{}, ErrNoPending
		}
		if err != nil {
			return -1, netip.AddrPort{}, api.SystemError("accept", err)
		}
		unix.CloseOnExec(nfd)
		// BSD-derived kernels copy O_NONBLOCK from the listener.
		if err := unix.SetNonblock(nfd, false); err != nil {
			_ = unix.Close(nfd)
			return -1, netip.AddrPort{}, api.SystemError("set blocking", err)
		}
		peer, err := addrPortOf(sa)
		if err != nil {
			_ = unix.Close(nfd)
			return -1, netip.AddrPort{}, err
		}
		return nfd, peer, nil
	}
}

// Connect opens a stream socket connected to addr. On failure no descriptor
// is leaked.
func Connect(addr netip.AddrPort) (int, error) {
	if !addr.Addr().Is4() {
		return -1, api.InvalidArgument("connect target %s is not IPv4", addr)
	}
	fd, err := newStreamSocket()
	if err != nil {
		return -1, err
	}
	if err := connect(fd, sockaddr(addr)); err != nil {
		_ = unix.Close(fd)
		return -1, api.SystemError("connect", err).WithContext("target", addr.String())
	}
	return fd, nil
}

// connect finishes a blocking connect that a signal may interrupt. After
// EINTR the handshake continues in the kernel, so completion is awaited with
// poll and the outcome read from SO_ERROR.
func connect(fd int, sa unix.Sockaddr) error {
	err := unix.Connect(fd, sa)
	switch err {
	case nil, unix.EISCONN:
		return nil
	case unix.EINTR, unix.EINPROGRESS, unix.EALREADY:
	default:
		return err
	}
	for {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
		if _, err := unix.Poll(fds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		soerr, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
		if err != nil {
			return err
		}
		if soerr != 0 {
			return unix.Errno(soerr)
		}
		return nil
	}
}

// Read reads into p, retrying on EINTR. Zero bytes with a nil error means
// the peer disabled sending.
func Read(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, api.SystemError("read", err)
		}
		return n, nil
	}
}

// WriteAll writes every byte of p, retrying on EINTR and short writes.
func WriteAll(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return api.SystemError("write", err).WithContext("remaining", len(p))
		}
		p = p[n:]
	}
	return nil
}

// Shutdown disables one direction of a connected socket.
func Shutdown(fd, how int) error {
	mode, op := unix.SHUT_WR, "shutdown write"
	if how == ShutRead {
		mode, op = unix.SHUT_RD, "shutdown read"
	}
	if err := unix.Shutdown(fd, mode); err != nil {
		return api.SystemError(op, err)
	}
	return nil
}

// Close releases the descriptor. The descriptor is invalid afterwards even
// when an error is returned.
func Close(fd int) error {
	if err := unix.Close(fd); err != nil {
		return api.SystemError("close", err)
	}
	return nil
}

func addrPortOf(sa unix.Sockaddr) (netip.AddrPort, error) {
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return netip.AddrPort{}, api.InvalidArgument("unsupported socket address %T", sa)
	}
	return netip.AddrPortFrom(netip.AddrFrom4(in4.Addr), uint16(in4.Port)), nil
}
