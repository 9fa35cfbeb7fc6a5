package heapvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockScalarRoundtrip(t *testing.T) {
	b := NewBlock(8)
	b.StoreI32(0, -42)
	b.StoreF32(4, 3.5)
	assert.Equal(t, int32(-42), b.LoadI32(0))
	assert.Equal(t, float32(3.5), b.LoadF32(4))
}

func TestBlockRefRoundtrip(t *testing.T) {
	b := NewBlock(8)
	other := NewBlock(4)
	assert.Nil(t, b.LoadRef(0))
	b.StoreRef(0, other)
	assert.Same(t, other, b.LoadRef(0))
}

func TestHeapAllocLinksAndSweeps(t *testing.T) {
	h := NewHeap()
	a := h.Alloc(4)
	_ = h.Alloc(4)
	require.Equal(t, 2, h.Len())

	Collect(h, rootsFunc(func(mark func(*Block) bool) {
		mark(a)
	}))
	assert.Equal(t, 1, h.Len())

	var remaining []*Block
	h.Blocks(func(blk *Block) { remaining = append(remaining, blk) })
	require.Len(t, remaining, 1)
	assert.Same(t, a, remaining[0])
}

func TestAllocStringHoldsBytes(t *testing.T) {
	h := NewHeap()
	blk := h.AllocString("hi")
	assert.Equal(t, "hi", string(blk.Bytes))
}

func TestHeapTrackReportsSite(t *testing.T) {
	h := NewHeap()
	var events []AllocEvent
	h.Track(func(ev AllocEvent) { events = append(events, ev) })
	h.Alloc(4)
	require.Len(t, events, 1)
	assert.Equal(t, 4, events[0].Size)
	assert.Contains(t, events[0].Site, "heapvm_test.go")
}

func TestStackCheckFits(t *testing.T) {
	s := NewStack(WithStackSize(8))
	assert.NoError(t, s.CheckFits(0, 8))
	assert.ErrorIs(t, s.CheckFits(4, 8), ErrStackOverflow)
}

// rootsFunc adapts a plain function to the RootWalker interface for
// tests that don't need a real scope chain.
type rootsFunc func(mark func(*Block) bool)

func (f rootsFunc) WalkRoots(mark func(*Block) bool) { f(mark) }
