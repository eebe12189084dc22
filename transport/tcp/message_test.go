package tcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFromString_AppendsTerminator(t *testing.T) {
	m := MessageFromString("hello")
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, []byte("hello\x00"), m.Bytes())
	assert.Equal(t, "hello", m.Text())

	empty := MessageFromString("")
	assert.Equal(t, 1, empty.Len())
	assert.Equal(t, "", empty.Text())
}

func TestNewMessageBuffer_Copies(t *testing.T) {
	src := []byte{1, 2, 3}
	m := NewMessageBuffer(src)
	src[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, m.Bytes())
}

func TestMessageBuffer_Equal(t *testing.T) {
	a := NewMessageBuffer([]byte("abc"))
	assert.True(t, a.Equal(NewMessageBuffer([]byte("abc"))))
	assert.False(t, a.Equal(NewMessageBuffer([]byte("abd"))))
	assert.False(t, a.Equal(NewMessageBuffer([]byte("ab"))))
	assert.False(t, a.Equal(MessageFromString("abc")))
	assert.True(t, MessageBuffer{}.Equal(NewMessageBuffer(nil)))
}
