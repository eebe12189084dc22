// File: internal/transport/doc.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// File-descriptor level IPv4 stream socket primitives for hioload-tcp.
// Calls are blocking, retry on EINTR and report failures as api.Error values
// of code ErrCodeSystem that unwrap to the kernel errno. Platforms without
// the unix socket API get stubs returning api.ErrNotSupported.

package transport
