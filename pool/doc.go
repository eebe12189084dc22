// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reusable receive buffers for hioload-tcp connections. A Scratch is on loan
// from a ScratchPool backed by valyala/bytebufferpool and grows by doubling
// while a message is being read. See scratch.go and default.go.
package pool
