// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp implements IPv4 endpoints, immutable message buffers and
// half-close framed stream connections for hioload-tcp.
//
// A Connection carries exactly one message per direction: the sender writes
// the bytes and disables sending, the receiver reads until end-of-stream.
// Sending a second message on the same connection is not supported.
package tcp
