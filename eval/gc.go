package eval

import (
	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// WalkRoots implements heapvm.RootWalker. It walks the live scope chain
// starting at the global scope and following each scope's transient
// Child link (set only while a call/block/loop body is actively
// executing), marking every heap block reachable from a local, a
// pending return slot, or -- recursively -- a class instance's fields,
// exactly as spec.md §4.5's mark phase requires.
func (in *Interp) WalkRoots(mark func(*heapvm.Block) bool) {
	in.walkScope(in.Global, mark)
	for _, b := range in.pinned {
		mark(b)
	}
}

func (in *Interp) walkScope(s *scope.Scope, mark func(*heapvm.Block) bool) {
	if s == nil {
		return
	}
	s.Vars(func(_ string, v *scope.Var) {
		in.markValue(value.Load(in.Stack.Block, v.Offset, v.Type), mark)
	})
	if s.Returned {
		in.markValue(s.ReturnValue, mark)
	}
	in.walkScope(s.Child, mark)
}

// markValue marks the block(s) a single Value pins: its own referenced
// block (for array/string/class types) and, for a bound method or
// constructor fn value, the receiver instance it carries in Recv -- a
// fn value's type is deliberately excluded from types.IsRef (it has no
// block of its own to load/store), so Recv is the only thing to trace.
func (in *Interp) markValue(v value.Value, mark func(*heapvm.Block) bool) {
	if v.Recv != nil && mark(v.Recv) {
		if fn, ok := v.Ref.(*scope.Func); ok && fn != nil {
			in.markInstance(v.Recv, fn.Class, mark)
		}
	}

	if !types.IsRef(v.Type) {
		return
	}
	blk := v.Block()
	if blk == nil || !mark(blk) {
		return
	}

	if v.Type.Array {
		elem := v.Type
		elem.Array = false
		if elem.Spec == types.Class {
			in.markClassArray(blk, elem, mark)
		}
		return
	}
	if v.Type.Spec == types.Class {
		cs, _ := v.Type.Class.(*scope.Scope)
		in.markInstance(blk, cs, mark)
	}
}

// markInstance recurses into every field of a class instance block,
// iterating the class scope's field table the way spec.md §4.5 requires
// ("for class instances, recurse into each field by iterating the class
// scope's variable map"). mark's "fresh mark" return value stops the
// recursion the second time a cyclic reference is reached.
func (in *Interp) markInstance(blk *heapvm.Block, cs *scope.Scope, mark func(*heapvm.Block) bool) {
	if cs == nil {
		return
	}
	cs.Vars(func(_ string, fv *scope.Var) {
		in.markValue(value.Load(blk, fv.Offset, fv.Type), mark)
	})
}

func (in *Interp) markClassArray(blk *heapvm.Block, elemType types.Type, mark func(*heapvm.Block) bool) {
	width := types.SizeOf(elemType)
	if width == 0 {
		return
	}
	cs, _ := elemType.Class.(*scope.Scope)
	n := blk.Size() / width
	for i := 0; i < n; i++ {
		ev := value.Load(blk, i*width, elemType)
		if eb := ev.Block(); eb != nil && mark(eb) {
			in.markInstance(eb, cs, mark)
		}
	}
}
