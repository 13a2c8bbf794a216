// ABOUTME: Tests for arena slot management
// ABOUTME: Validates generations, slot reuse and stale reference detection

package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefEncoding(t *testing.T) {
	r := makeRef(7, 3)
	assert.Equal(t, uint32(7), r.index())
	assert.Equal(t, uint32(3), r.gen())
	assert.Equal(t, "7@3", r.String())
	assert.Equal(t, "nil", Nil.String())
	assert.NotEqual(t, Nil, makeRef(0, 1), "first slot of first generation is not Nil")
}

func TestHeapReusesReleasedSlots(t *testing.T) {
	var h heap
	a := h.alloc(Value{Kind: KindInteger, Int: 1})
	b := h.alloc(Value{Kind: KindInteger, Int: 2})
	require.Equal(t, 2, h.live)

	h.release(a.index())
	assert.Equal(t, 1, h.live)
	_, ok := h.resolve(a)
	assert.False(t, ok, "released ref must not resolve")

	c := h.alloc(Value{Kind: KindInteger, Int: 3})
	assert.Equal(t, a.index(), c.index(), "freed slot is reused")
	assert.NotEqual(t, a, c, "reuse bumps the generation")
	_, ok = h.resolve(a)
	assert.False(t, ok, "old ref stays stale after reuse")

	s, ok := h.resolve(c)
	require.True(t, ok)
	assert.Equal(t, int64(3), s.val.Int)
	s, ok = h.resolve(b)
	require.True(t, ok)
	assert.Equal(t, int64(2), s.val.Int)
	assert.Len(t, h.slots, 2)
}

func TestHeapResolveOutOfRange(t *testing.T) {
	var h heap
	_, ok := h.resolve(makeRef(10, 1))
	assert.False(t, ok)
	_, ok = h.resolve(Nil)
	assert.False(t, ok)
}

func TestHeapGenerationWraps(t *testing.T) {
	var h heap
	r := h.alloc(Value{Kind: KindInteger})
	h.slots[r.index()].gen = ^uint32(0)
	h.release(r.index())
	assert.Equal(t, uint32(1), h.slots[r.index()].gen, "generation skips zero")
}

func TestSweepFreesOnlyUnmarked(t *testing.T) {
	var h heap
	keep := h.alloc(Value{Kind: KindInteger, Int: 1})
	drop := h.alloc(Value{Kind: KindInteger, Int: 2})

	h.mark([]Ref{keep}, nil)
	assert.Equal(t, 1, h.sweep())

	_, ok := h.resolve(keep)
	assert.True(t, ok)
	_, ok = h.resolve(drop)
	assert.False(t, ok)
	assert.False(t, h.slots[keep.index()].marked)
}
