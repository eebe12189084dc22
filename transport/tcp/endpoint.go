// File: transport/tcp/endpoint.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tcp

import (
	"encoding/binary"
	"net/netip"
	"strconv"

	"github.com/momentics/hioload-tcp/api"
)

const (
	// FamilyInet is the AF_INET address family value.
	FamilyInet = 2
	// sockaddrInetLen is sizeof(struct sockaddr_in).
	sockaddrInetLen = 16
)

// Endpoint is an IPv4 address and port, both in host order. The zero value
// is 0.0.0.0:0.
type Endpoint struct {
	addr uint32
	port uint16
}

// NewEndpoint builds an endpoint from a host-order address and port.
func NewEndpoint(addr uint32, port uint16) Endpoint {
	return Endpoint{addr: addr, port: port}
}

// ParseEndpoint parses a dotted-decimal IPv4 literal. Host names, IPv6 and
// malformed literals are validation errors.
func ParseEndpoint(text string, port uint16) (Endpoint, error) {
	a, err := netip.ParseAddr(text)
	if err != nil || !a.Is4() {
		return Endpoint{}, api.InvalidArgument("invalid IPv4 address %q", text)
	}
	return fromAddr(a, port), nil
}

// EndpointFromAddrPort converts a decoded socket address. Only IPv4 is accepted.
func EndpointFromAddrPort(ap netip.AddrPort) (Endpoint, error) {
	a := ap.Addr().Unmap()
	if !a.Is4() {
		return Endpoint{}, api.InvalidArgument("address %s is not IPv4", ap)
	}
	return fromAddr(a, ap.Port()), nil
}

func fromAddr(a netip.Addr, port uint16) Endpoint {
	b := a.As4()
	return Endpoint{addr: binary.BigEndian.Uint32(b[:]), port: port}
}

// Address returns the host-order IPv4 address.
func (e Endpoint) Address() uint32 { return e.addr }

// Port returns the host-order port.
func (e Endpoint) Port() uint16 { return e.port }

// Family returns the address family, always FamilyInet.
func (e Endpoint) Family() int { return FamilyInet }

// Len returns the size of the kernel socket address structure.
func (e Endpoint) Len() int { return sockaddrInetLen }

// Host returns the address in dotted-decimal form.
func (e Endpoint) Host() string { return e.AddrPort().Addr().String() }

// AddrPort returns the endpoint as a netip.AddrPort.
func (e Endpoint) AddrPort() netip.AddrPort {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], e.addr)
	return netip.AddrPortFrom(netip.AddrFrom4(b), e.port)
}

func (e Endpoint) String() string {
	return e.Host() + ":" + strconv.Itoa(int(e.port))
}
