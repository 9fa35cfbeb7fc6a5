package heapvm

import (
	"fmt"
	"runtime"
)

// AllocEvent records one heap allocation's size and the Go call site
// that made it, the bookkeeping entry a debug allocator report is built
// from.
type AllocEvent struct {
	Size int
	Site string
}

// Heap owns every reclaimable block: arrays, strings and class instances.
// Blocks are threaded on a doubly linked list so a dead block can be
// unlinked in O(1) during sweep.
type Heap struct {
	list *Block

	onAlloc func(AllocEvent)
}

// NewHeap returns an empty heap.
func NewHeap() *Heap { return &Heap{} }

// Track installs fn to be called once per Alloc/AllocString with the
// new block's size and calling Go source location, the hook stdlib's
// debug allocator report is built on. Passing nil disables tracking,
// the default.
func (h *Heap) Track(fn func(AllocEvent)) {
	h.onAlloc = fn
}

// Alloc returns a new zero-initialized, list-linked block of size bytes.
func (h *Heap) Alloc(size int) *Block {
	b := NewBlock(size)
	h.link(b)
	if h.onAlloc != nil {
		h.onAlloc(AllocEvent{Size: size, Site: callSite()})
	}
	return b
}

// AllocString returns a new block holding the raw bytes of s (no
// terminator needed: Go slices carry their own length).
func (h *Heap) AllocString(s string) *Block {
	b := &Block{Bytes: []byte(s)}
	h.link(b)
	if h.onAlloc != nil {
		h.onAlloc(AllocEvent{Size: len(b.Bytes), Site: callSite()})
	}
	return b
}

// callSite reports the file:line of Alloc/AllocString's caller (two
// frames up from here: this function, then Alloc/AllocString, then the
// actual allocation site in eval or stdlib).
func callSite() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func (h *Heap) link(b *Block) {
	b.Next = h.list
	b.Prev = nil
	if h.list != nil {
		h.list.Prev = b
	}
	h.list = b
}

func (h *Heap) unlink(b *Block) {
	if b.Next != nil {
		b.Next.Prev = b.Prev
	}
	if b.Prev != nil {
		b.Prev.Next = b.Next
	} else if h.list == b {
		h.list = b.Next
	}
	b.Next, b.Prev = nil, nil
}

// Blocks calls fn for every live-or-dead block currently on the heap
// list, in list order. fn must not mutate the list's linkage.
func (h *Heap) Blocks(fn func(*Block)) {
	for b := h.list; b != nil; b = b.Next {
		fn(b)
	}
}

// Len returns the number of blocks currently tracked (for tests and the
// debug allocator report).
func (h *Heap) Len() int {
	n := 0
	h.Blocks(func(*Block) { n++ })
	return n
}
