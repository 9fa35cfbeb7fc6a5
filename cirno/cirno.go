// Package cirno is the host embedding layer spec.md §4.6 describes: a
// thin façade over eval.Interp that gives an embedding Go program
// init/run/stop, native function binding, and script-function calls
// without reaching into the evaluator's internals.
//
// The evaluator package does the real work; this package adds the
// conveniences a host actually wants (parsing a file straight to a
// tree, constructing argument Values, walking diagnostics) without
// growing the evaluator's own API surface.
package cirno

import (
	"io"

	"github.com/pkg/errors"

	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/diag"
	"github.com/vv4t/cirno/eval"
	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/internal/source"
	"github.com/vv4t/cirno/lex"
	"github.com/vv4t/cirno/parse"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// Runtime is one embedded Cirno instance: a global scope, a process
// stack, a heap, and wherever `print` output goes. Not safe for
// concurrent use (spec.md §5).
type Runtime struct {
	in *eval.Interp
}

// Init creates a fresh Runtime, matching the source's cirno_init():
// a new global scope and stack block, ready for Bind calls and Run.
// out receives everything a running program prints.
func Init(out io.Writer, opts ...heapvm.Option) *Runtime {
	return &Runtime{in: eval.New(out, opts...)}
}

// Load reads path (and whatever it #includes) and parses it into a
// program tree, the Go analog of the source's combined read+tokenize+
// parse step. Diagnostics from lexing and parsing are appended to the
// Runtime's own diagnostic list so Diagnostics() reports both parse and
// eval failures from one place.
func (r *Runtime) Load(path string) ([]ast.Stmt, error) {
	set := source.NewSet()
	lx := lex.New(set, r.in.Diags)
	head, err := lx.Lex(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %q", path)
	}
	return parse.Parse(head, r.in.Diags), nil
}

// Run evaluates tree at global scope, the Go analog of cirno_run().
func (r *Runtime) Run(tree []ast.Stmt) bool {
	return r.in.Run(tree)
}

// Unload tears down the global scope and collects everything still on
// the heap, the Go analog of cirno_unload() / cirno_stop().
func (r *Runtime) Unload() {
	r.in.Stop()
}

// Bind installs a native function under name in the global scope
// (spec.md §4.6's `bind(name, callback)`), so script code can call it
// like any other global function.
func (r *Runtime) Bind(name string, params []ast.ParamDecl, retType types.Type, fn scope.NativeFunc) {
	r.in.Bind(name, params, retType, fn)
}

// Call invokes a script-defined (or bound native) global function from
// host code (spec.md §4.6's `call(name, args[])`), applying the same
// arity and type checks a script-level call would.
func (r *Runtime) Call(name string, args ...value.Value) (value.Value, bool) {
	return r.in.Call(name, args)
}

// ArgLoad retrieves a bound parameter by name out of a native
// callback's argument scope (spec.md §4.6's `arg_load(scope, name)`).
func (r *Runtime) ArgLoad(s *scope.Scope, name string) (value.Value, bool) {
	return r.in.ArgLoad(s, name)
}

// Diagnostics returns every diagnostic recorded so far across Load and
// Run/Call.
func (r *Runtime) Diagnostics() []diag.Diagnostic {
	return r.in.Diags.Items()
}

// Failed reports whether any error-severity diagnostic has been
// recorded.
func (r *Runtime) Failed() bool {
	return r.in.Diags.Failed()
}

// HeapLen reports the number of blocks currently tracked on the heap,
// used by stdlib's debug-allocator report.
func (r *Runtime) HeapLen() int {
	return r.in.Heap.Len()
}

// TrackAllocs installs fn to observe every subsequent heap allocation,
// the hook stdlib's debug allocator report is built on (spec.md §1's
// "debug allocator for leak tracking").
func (r *Runtime) TrackAllocs(fn func(heapvm.AllocEvent)) {
	r.in.Heap.Track(fn)
}

// I32 constructs an i32 rvalue, a helper for hosts building Call
// argument lists (spec.md §4.6's "helpers that produce i32/f32/string
// values").
func I32(v int32) value.Value {
	return value.Value{Type: types.I32Type, I32: v}
}

// F32 constructs an f32 rvalue.
func F32(v float32) value.Value {
	return value.Value{Type: types.F32Type, F32: v}
}

// Str heap-allocates s and returns a string rvalue referencing it,
// the Go analog of the source's "allocate a string from a C byte
// array" helper.
func (r *Runtime) Str(s string) value.Value {
	blk := r.in.Heap.AllocString(s)
	return value.Value{Type: types.StringType, Ref: blk}
}
