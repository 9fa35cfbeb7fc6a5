package eval

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// evalNew is the first half of `new ClassName(args)`: it allocates the
// instance block and yields a function value bound to that block's
// constructor (Recv set), ready for the immediately following Call to
// invoke. A bare `new ClassName` with no call still evaluates to this
// same fn-typed value; storing it anywhere but calling it is therefore
// a type mismatch against a `class ClassName` target (spec.md §9's open
// question on this is resolved here as a hard error via the ordinary
// assignment/declaration type check, not a special case).
func (in *Interp) evalNew(s *scope.Scope, n *ast.New) (value.Value, bool) {
	class := s.FindClass(n.ClassName)
	if class == nil {
		in.errorf(n.Pos, "unknown class '%s'", n.ClassName)
		return value.Value{}, false
	}
	ctor, ok := class.LocalFunc("+new")
	if !ok {
		in.errorf(n.Pos, "class '%s' declares no constructor", n.ClassName)
		return value.Value{}, false
	}
	instance := in.Heap.Alloc(class.Size)
	return value.Value{Type: types.FnType, Ref: ctor, Recv: instance}, true
}

// evalCall invokes a call expression's callee, which must evaluate to a
// fn-typed value carrying a *scope.Func record (free function, bound
// method, or bound constructor).
func (in *Interp) evalCall(s *scope.Scope, n *ast.Call) (value.Value, bool) {
	callee, ok := in.evalExpr(s, n.Callee)
	if !ok {
		return value.Value{}, false
	}
	if callee.Type.Spec != types.Fn || callee.Type.Array {
		in.errorf(n.Pos, "cannot call a value of type %s", callee.Type)
		return value.Value{}, false
	}
	fn, _ := callee.Ref.(*scope.Func)
	if fn == nil {
		in.errorf(n.Pos, "call target has no definition")
		return value.Value{}, false
	}
	// callee.Recv (the `new` receiver, or a method's bound instance) is
	// not necessarily reachable from any scope yet -- pin it so a GC safe
	// point reached while evaluating n.Args (a nested call) cannot sweep
	// it out from under invokeBound's `this` binding.
	in.pin(callee.Recv)
	defer in.unpin(callee.Recv)
	return in.invoke(s, n.Pos, fn, callee.Recv, n.Args)
}

// invoke is the call machinery for an ordinary call expression: it
// evaluates argExprs in the caller's own scope s, then hands off to
// invokeBound to actually run fn.
func (in *Interp) invoke(s *scope.Scope, pos ast.Pos, fn *scope.Func, recv *heapvm.Block, argExprs []ast.Expr) (value.Value, bool) {
	if fn.Native == nil && fn.Body == nil {
		in.errorf(pos, "'%s' has no definition", fn.Name)
		return value.Value{}, false
	}
	if len(argExprs) != len(fn.Params) {
		in.errorf(pos, "'%s' expects %d argument(s), got %d", fn.Name, len(fn.Params), len(argExprs))
		return value.Value{}, false
	}

	// Arguments are evaluated in the caller's own scope, so they see the
	// caller's locals. A nested call in an argument subexpression lays its
	// frame out from s.Size, the same offset this call's frame will use;
	// that nested call has returned before invokeBound stores anything
	// there.
	argVals := make([]value.Value, len(argExprs))
	for i, a := range argExprs {
		v, ok := in.evalExpr(s, a)
		if !ok {
			return value.Value{}, false
		}
		argVals[i] = v
	}

	return in.invokeBound(s, pos, fn, recv, argVals)
}

// invokeBound is the call machinery shared by free function calls,
// method calls, constructor calls and a host's Call: it opens a new
// scope laid out above the caller's stack region (s only lends its
// current Size as the high-water mark and its Child slot as the GC
// root anchor -- for a host-initiated call that is the global scope),
// binds `this` (for methods/constructors) and the cast parameters, runs
// the body, and produces the call's result.
func (in *Interp) invokeBound(s *scope.Scope, pos ast.Pos, fn *scope.Func, recv *heapvm.Block, argVals []value.Value) (value.Value, bool) {
	// The callee's search_parent is its own lexical parent (the global
	// scope for a free function, or the scope enclosing the class for a
	// method/constructor) per spec.md §4.4 -- NOT the caller's scope, so
	// a callee only ever sees its own lexical environment plus whatever
	// it declares itself.
	callScope := scope.New(fn.Parent, fn.ReturnType, true)
	callScope.Size = s.Size

	if fn.Class != nil {
		thisType := types.ClassType(fn.Class)
		thisVar, ok := in.declareVar(callScope, pos, "this", thisType)
		if !ok {
			return value.Value{}, false
		}
		value.Assign(in.Stack.Block, thisVar.Offset, thisType, value.Value{Type: thisType, Ref: recv})
	}

	for i, p := range fn.Params {
		pt, ok := in.resolveType(fn.Parent, p.Type)
		if !ok {
			return value.Value{}, false
		}
		casted, ok := in.coerce(p.At(), argVals[i], pt)
		if !ok {
			return value.Value{}, false
		}
		pv, ok := in.declareVar(callScope, p.At(), p.Name, pt)
		if !ok {
			return value.Value{}, false
		}
		value.Assign(in.Stack.Block, pv.Offset, pt, casted)
	}

	s.Child = callScope
	savedLoopDepth := in.loopDepth
	in.loopDepth = 0

	var ranOK bool
	if fn.Native != nil {
		ranOK = fn.Native(callScope, &callScope.ReturnValue)
		if !ranOK {
			in.errorf(pos, "native function '%s' failed", fn.Name)
		} else {
			callScope.Returned = true
		}
	} else {
		ranOK = in.execBody(callScope, fn.Body)
	}

	in.loopDepth = savedLoopDepth
	// Collect while callScope is still reachable through s.Child: its
	// ReturnValue (and, for a constructor, recv's fields) must survive
	// this sweep even though nothing but this transient call frame
	// points to it yet -- the result hasn't been stored anywhere the
	// caller can see until invoke actually returns it below.
	in.collect()
	s.Child = nil

	if !ranOK {
		return value.Value{}, false
	}

	if fn.IsCtor {
		return value.Value{Type: types.ClassType(fn.Class), Ref: recv}, true
	}
	result := callScope.ReturnValue
	result.Origin = value.Origin{}
	return result, true
}
