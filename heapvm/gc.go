package heapvm

// RootWalker is implemented by whatever owns the live scope chain (the
// eval package's call-frame scopes). Collect asks it to call mark once
// for every heap reference reachable from a live local, a live return
// slot, or a field of a live class instance: clear every block, walk the
// scope chain (global -> child -> ...) marking reachable blocks
// (recursing into class fields and array-of-class elements), then sweep
// anything left unmarked.
//
// Splitting the mark traversal out of this package (rather than having
// heapvm walk scopes itself) avoids an import cycle: the scope/value
// model needs to refer to *heapvm.Block, so heapvm cannot import scope
// back.
//
// mark sets b's Used bit and reports whether that is a fresh mark (false
// for a nil block or one already marked this pass) so a RootWalker can
// stop recursing into a class instance's fields once it sees the block
// was already visited, which is what keeps cyclic class references from
// looping the mark phase forever.
type RootWalker interface {
	WalkRoots(mark func(*Block) bool)
}

// Collect runs one mark-and-sweep pass over h: clear every block's Used
// bit, ask roots to mark everything reachable, then free every block
// that is still unmarked.
func Collect(h *Heap, roots RootWalker) {
	h.Blocks(func(b *Block) { b.Used = false })

	roots.WalkRoots(func(b *Block) bool {
		if b == nil || b.Used {
			return false
		}
		b.Used = true
		return true
	})

	var dead []*Block
	h.Blocks(func(b *Block) {
		if !b.Used {
			dead = append(dead, b)
		}
	})
	for _, b := range dead {
		h.unlink(b)
	}
}
