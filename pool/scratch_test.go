package pool_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-tcp/pool"
)

func TestScratch_StartsEmptyWithInitialCapacity(t *testing.T) {
	s := pool.NewScratchPool(64).Get()
	defer s.Release()

	assert.Equal(t, 0, s.Len())
	assert.GreaterOrEqual(t, s.Cap(), 64)
}

func TestScratch_DoublesWhenTailIsSmall(t *testing.T) {
	s := pool.NewScratchPool(64).Get()
	defer s.Release()
	start := s.Cap()

	tail := s.Reserve(8)
	require.Equal(t, start, s.Cap())
	copy(tail, bytes.Repeat([]byte{'a'}, start-8))
	s.Advance(start - 8)

	// exactly threshold bytes free: must grow
	tail = s.Reserve(8)
	assert.Equal(t, 2*start, s.Cap())
	assert.Len(t, tail, 2*start-(start-8))
	assert.Equal(t, bytes.Repeat([]byte{'a'}, start-8), s.Bytes())
}

func TestScratch_AccumulatesAcrossGrowth(t *testing.T) {
	s := pool.NewScratchPool(16).Get()
	defer s.Release()

	var want []byte
	for i := 0; i < 200; i++ {
		tail := s.Reserve(4)
		tail[0] = byte(i)
		s.Advance(1)
		want = append(want, byte(i))
	}
	assert.Equal(t, want, s.Bytes())
}

func TestScratch_ReleaseIsIdempotentAndRecycles(t *testing.T) {
	p := pool.NewScratchPool(32)
	s := p.Get()
	s.Advance(copy(s.Reserve(0), "stale"))
	s.Release()
	s.Release()

	next := p.Get()
	defer next.Release()
	assert.Equal(t, 0, next.Len(), "recycled buffers must come back empty")
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, pool.Default(), pool.Default())
	s := pool.Default().Get()
	defer s.Release()
	assert.GreaterOrEqual(t, s.Cap(), pool.DefaultScratchSize)
}
