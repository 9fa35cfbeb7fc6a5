// Package value implements the expression-result representation spec.md
// §3 describes: a typed payload (i32, f32, or a heap reference) plus an
// origin that is either absent (an rvalue) or a (base block, byte
// offset) pair (an lvalue).
//
// The "explicit option" lvalue origin is the DESIGN NOTE §9 calls for in
// place of a nullable raw pointer; Origin.Valid is that option's
// discriminant.
package value

import (
	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/types"
)

// Origin names the (block, offset) a Value was loaded from. A Value is
// assignable exactly when Origin.Valid is true.
type Origin struct {
	Base   *heapvm.Block
	Offset int
	Valid  bool
}

// Callable is implemented by scope.Func, the payload of a Fn-typed
// Value; value stays independent of the scope package (which itself
// holds Values in return slots). Value.Ref is an interface{}, so this
// interface is not enforced on it.
type Callable interface {
	// Callee returns the record itself as an opaque identity. The eval
	// package does not call it; it type-asserts Ref to *scope.Func to
	// invoke the function.
	Callee() interface{}
}

// Value is one expression result: its current Type plus whichever
// payload field that Type selects, and its Origin.
type Value struct {
	Type types.Type

	I32 int32
	F32 float32
	// Ref holds a *heapvm.Block for string/array/class-typed values, or
	// a Callable for fn-typed values.
	Ref interface{}
	// Recv is set only on fn-typed Values bound to an instance: a method
	// obtained as a direct member of a class instance, or the constructor
	// value `new ClassName` yields. It pins the receiver block so
	// the value can synthesize `this` when called, and so the collector
	// does not drop an instance reachable only through a method value in
	// flight (spec.md §4.5's "function values with this-origin also pin
	// the instance block").
	Recv *heapvm.Block

	Origin Origin
}

// IsLvalue reports whether v can be the target of an assignment.
func (v Value) IsLvalue() bool { return v.Origin.Valid }

// Block returns v.Ref as a *heapvm.Block (nil if v does not carry a
// block reference, e.g. a Callable fn value or a scalar).
func (v Value) Block() *heapvm.Block {
	b, _ := v.Ref.(*heapvm.Block)
	return b
}
