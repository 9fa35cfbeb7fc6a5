// Package heapvm is Cirno's memory manager: one static byte block used as
// the process-global stack for locals and parameters, and a doubly
// linked list of reclaimable heap blocks for arrays, strings and class
// instances, collected by a precise mark-and-sweep pass.
//
// Scalar i32/f32 fields are packed directly into a Block's Bytes, while
// reference-typed fields (string/array/class/fn) are kept in a parallel
// slot map instead of raw pointer bytes, since Go has no portable way to
// stash an interface value in a byte buffer the way a single machine
// word can hold a pointer.
package heapvm

import "encoding/binary"

// Block is a single heap (or stack) allocation: a byte buffer for
// scalar fields plus a side table of reference-typed slots, a Used mark
// bit for the collector, and the doubly linked list pointers Heap
// threads every reclaimable block through.
type Block struct {
	Bytes []byte
	Used  bool

	refs map[int]interface{}

	Next, Prev *Block
}

// NewBlock allocates a zero-initialized block of the given byte size; it
// does not link the block into any list (see Heap.Alloc for that).
func NewBlock(size int) *Block {
	return &Block{Bytes: make([]byte, size)}
}

// Size returns the block's byte length.
func (b *Block) Size() int { return len(b.Bytes) }

// LoadI32 reads a little-endian 32-bit int at offset.
func (b *Block) LoadI32(offset int) int32 {
	return int32(binary.LittleEndian.Uint32(b.Bytes[offset : offset+4]))
}

// StoreI32 writes a little-endian 32-bit int at offset.
func (b *Block) StoreI32(offset int, v int32) {
	binary.LittleEndian.PutUint32(b.Bytes[offset:offset+4], uint32(v))
}

// LoadF32 reads a little-endian IEEE-754 float at offset.
func (b *Block) LoadF32(offset int) float32 {
	bits := binary.LittleEndian.Uint32(b.Bytes[offset : offset+4])
	return float32FromBits(bits)
}

// StoreF32 writes a little-endian IEEE-754 float at offset.
func (b *Block) StoreF32(offset int, v float32) {
	binary.LittleEndian.PutUint32(b.Bytes[offset:offset+4], float32ToBits(v))
}

// LoadRef reads the reference stored at offset (nil if never assigned).
// Offsets used for reference slots are never shared with scalar offsets
// because the scope/field layout allocates each variable its own byte
// range via types.SizeOf.
func (b *Block) LoadRef(offset int) interface{} {
	if b.refs == nil {
		return nil
	}
	return b.refs[offset]
}

// StoreRef writes a reference (another *Block, or a function value) at
// offset.
func (b *Block) StoreRef(offset int, v interface{}) {
	if b.refs == nil {
		b.refs = make(map[int]interface{})
	}
	b.refs[offset] = v
}
