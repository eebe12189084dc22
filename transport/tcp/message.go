// File: transport/tcp/message.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tcp

import "bytes"

// MessageBuffer is an immutable, owned byte sequence carried by a Connection.
type MessageBuffer struct {
	data []byte
}

// NewMessageBuffer copies b into a new message.
func NewMessageBuffer(b []byte) MessageBuffer {
	return MessageBuffer{data: bytes.Clone(b)}
}

// MessageFromString stores s followed by a single NUL byte, so the message
// length is len(s)+1. Text strips the terminator again.
func MessageFromString(s string) MessageBuffer {
	data := make([]byte, len(s)+1)
	copy(data, s)
	return MessageBuffer{data: data}
}

// Bytes returns the content. Callers must not modify it.
func (m MessageBuffer) Bytes() []byte { return m.data }

// Len returns the content length in bytes.
func (m MessageBuffer) Len() int { return len(m.data) }

// Text returns the content as a string without one trailing NUL, if present.
func (m MessageBuffer) Text() string {
	return string(bytes.TrimSuffix(m.data, []byte{0}))
}

// Equal reports whether both messages hold the same bytes.
func (m MessageBuffer) Equal(other MessageBuffer) bool {
	return len(m.data) == len(other.data) && bytes.Equal(m.data, other.data)
}
