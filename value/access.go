package value

import (
	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/types"
)

// boundFn is the slot payload for a Fn-typed storage location: a fn
// value's identity (its *scope.Func, opaque here as a Callable) plus the
// bound receiver, if any. Storing the two together means a method value
// assigned into a variable or passed as an argument keeps its `this`
// binding across the round trip.
type boundFn struct {
	ref  interface{}
	recv *heapvm.Block
}

// Load reads a Value of the given type out of base at offset and tags it
// as an lvalue at that (base, offset), dispatching on the type's spec.
func Load(base *heapvm.Block, offset int, t types.Type) Value {
	v := Value{Type: t, Origin: Origin{Base: base, Offset: offset, Valid: true}}
	switch {
	case t.Spec == types.Fn && !t.Array:
		if bf, ok := base.LoadRef(offset).(boundFn); ok {
			v.Ref = bf.ref
			v.Recv = bf.recv
		}
	case t.Array, t.Spec == types.String, t.Spec == types.Class:
		v.Ref = base.LoadRef(offset)
	case t.Spec == types.I32:
		v.I32 = base.LoadI32(offset)
	case t.Spec == types.F32:
		v.F32 = base.LoadF32(offset)
	}
	return v
}

// Assign writes v's payload into base at offset according to t.
func Assign(base *heapvm.Block, offset int, t types.Type, v Value) {
	switch {
	case t.Spec == types.Fn && !t.Array:
		base.StoreRef(offset, boundFn{ref: v.Ref, recv: v.Recv})
	case t.Array, t.Spec == types.String, t.Spec == types.Class:
		base.StoreRef(offset, v.Ref)
	case t.Spec == types.I32:
		base.StoreI32(offset, v.I32)
	case t.Spec == types.F32:
		base.StoreF32(offset, v.F32)
	}
}
