// Package api
// Author: momentics <momentics@gmail.com>
//
// Contracts shared across hioload-tcp packages: queue capabilities consumed
// by the server, acceptor metrics hooks and the structured Error type.
package api
