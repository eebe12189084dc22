// File: internal/transport/socket_other.go
//go:build !(linux || darwin || freebsd || netbsd || openbsd)

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stubs for platforms without the unix socket API.

package transport

import (
	"net/netip"
	"time"

	"github.com/momentics/hioload-tcp/api"
)

// Supported reports whether raw socket primitives are available on this platform.
const Supported = false

func unsupported(op string) error {
	e := api.NewError(api.ErrCodeNotSupported, "raw sockets are not available on this platform")
	e.Op = op
	return e
}

func Listen(port, backlog int, reuseAddr bool) (int, error) { return -1, unsupported("listen") }

func LocalAddr(fd int) (netip.AddrPort, error) {
	return netip.AddrPort{}, unsupported("getsockname")
}

func PollReadable(fd int, timeout time.Duration) (bool, error) {
	return false, unsupported("poll")
}

func Accept(fd int) (int, netip.AddrPort, error) {
	return -1, netip.AddrPort{}, unsupported("accept")
}

func Connect(addr netip.AddrPort) (int, error) { return -1, unsupported("connect") }

func Read(fd int, p []byte) (int, error) { return 0, unsupported("read") }

func WriteAll(fd int, p []byte) error { return unsupported("write") }

func Shutdown(fd, how int) error { return unsupported("shutdown") }

func Close(fd int) error { return unsupported("close") }
