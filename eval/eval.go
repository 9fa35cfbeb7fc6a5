// Package eval is Cirno's tree-walking evaluator: one function per
// syntax category (expressions, statements, declarations, types, calls),
// operating over an ambient scope stack, the process stack block, and
// the reclaimable heap.
//
// Interp switches on an ast.Expr/ast.Stmt's concrete type and recurses
// down the tree, owning a heapvm.Stack addressed by scope-relative byte
// offsets for every active call frame.
package eval

import (
	"io"

	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/diag"
	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/internal/ngi"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
)

// Interp owns one running program's global scope, stack and heap. It is
// not safe for concurrent use (spec.md §5: single-threaded, synchronous,
// non-reentrant).
type Interp struct {
	Global *scope.Scope
	Stack  *heapvm.Stack
	Heap   *heapvm.Heap
	Diags  *diag.List

	Out *ngi.ErrWriter

	// loopDepth counts lexically-active loop bodies in the current call
	// frame; it is saved and reset to 0 across a function call so a
	// break/continue cannot escape the function it was written in, and
	// restored on return. execCtrl consults it to diagnose a break or
	// continue used outside of a loop.
	loopDepth int

	// pinned holds heap blocks that are live but not yet reachable from
	// any scope -- namely a `new ClassName` receiver between allocation
	// and the constructor call binding it to `this`. Argument expressions
	// evaluated in between (e.g. `new Point(f())`) can themselves run a
	// nested call whose own GC safe point would otherwise find the fresh
	// instance unrooted and sweep it. pin/unpin nest along with Go's own
	// call stack, so a simple slice used as a stack is sufficient.
	pinned []*heapvm.Block
}

// pin roots b for the duration of the caller's critical section; unpin
// must be called (typically via defer) once b is either stored into a
// scope or no longer needed. A nil b is a no-op, matching the common case
// of a non-constructor call having no receiver to protect.
func (in *Interp) pin(b *heapvm.Block) {
	if b != nil {
		in.pinned = append(in.pinned, b)
	}
}

func (in *Interp) unpin(b *heapvm.Block) {
	if b == nil {
		return
	}
	for i := len(in.pinned) - 1; i >= 0; i-- {
		if in.pinned[i] == b {
			in.pinned = append(in.pinned[:i], in.pinned[i+1:]...)
			return
		}
	}
}

// New creates an Interp with a fresh global scope, stack and heap. out
// receives `print` output (typically os.Stdout for the CLI, or a buffer
// in tests and embedding hosts).
func New(out io.Writer, opts ...heapvm.Option) *Interp {
	return &Interp{
		Global: scope.New(nil, types.NoneType, true),
		Stack:  heapvm.NewStack(opts...),
		Heap:   heapvm.NewHeap(),
		Diags:  &diag.List{},
		Out:    ngi.NewErrWriter(out),
	}
}

// Run evaluates program at global scope, in source order, exactly as
// int_run -> int_body(&scope_global, node) does. It returns false as
// soon as any statement fails (a diagnostic has already been recorded
// into Diags at that point).
func (in *Interp) Run(program []ast.Stmt) bool {
	return in.execBody(in.Global, program)
}

// Stop discards the global scope (dropping every root) and sweeps the
// heap clean, mirroring int_stop's scope_free + heap_clean.
func (in *Interp) Stop() {
	in.Global = scope.New(nil, types.NoneType, true)
	in.collect()
}

// collect runs one mark-and-sweep pass rooted at in.Global and the pinned
// blocks. It is invoked after each call body, after each while/for
// iteration body, and by Stop.
func (in *Interp) collect() {
	heapvm.Collect(in.Heap, in)
}
