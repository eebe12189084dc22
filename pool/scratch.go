// File: pool/scratch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"github.com/valyala/bytebufferpool"
)

// ScratchPool hands out growable receive buffers with a minimum starting capacity.
type ScratchPool struct {
	initial int
	p       bytebufferpool.Pool
}

// NewScratchPool creates a pool whose buffers start with at least initial bytes of capacity.
func NewScratchPool(initial int) *ScratchPool {
	if initial <= 0 {
		initial = DefaultScratchSize
	}
	return &ScratchPool{initial: initial}
}

// Get borrows an empty scratch buffer. Release returns it.
func (p *ScratchPool) Get() *Scratch {
	bb := p.p.Get()
	bb.Reset()
	if cap(bb.B) < p.initial {
		bb.B = make([]byte, 0, p.initial)
	}
	return &Scratch{bb: bb, owner: p}
}

// Scratch accumulates bytes in a contiguous buffer. Not safe for concurrent use.
type Scratch struct {
	bb    *bytebufferpool.ByteBuffer
	owner *ScratchPool
}

// Reserve returns the unused tail of the buffer, first doubling the capacity
// while at most threshold bytes are free. The returned slice is valid until
// the next Reserve or Release.
func (s *Scratch) Reserve(threshold int) []byte {
	b := s.bb.B
	for cap(b)-len(b) <= threshold {
		next := make([]byte, len(b), 2*cap(b))
		copy(next, b)
		b = next
	}
	s.bb.B = b
	return b[len(b):cap(b)]
}

// Advance marks n bytes of the last reserved tail as written.
func (s *Scratch) Advance(n int) {
	s.bb.B = s.bb.B[:len(s.bb.B)+n]
}

// Bytes returns the written bytes. The slice aliases pooled memory and must
// not be retained after Release.
func (s *Scratch) Bytes() []byte { return s.bb.B }

// Len returns the number of written bytes.
func (s *Scratch) Len() int { return len(s.bb.B) }

// Cap returns the current capacity.
func (s *Scratch) Cap() int { return cap(s.bb.B) }

// Release returns the buffer to its pool. The Scratch must not be used afterwards.
func (s *Scratch) Release() {
	if s.bb == nil {
		return
	}
	s.owner.p.Put(s.bb)
	s.bb = nil
}
