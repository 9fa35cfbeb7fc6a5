package eval

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// hostPos tags diagnostics raised by a host-initiated operation (Bind,
// Call) that has no source position of its own.
var hostPos = ast.Pos{Path: "<host>", Line: 0}

// Bind installs a native function under name in the global scope, per
// spec.md §4.6's `bind(name, callback)`. A rebind of an existing name
// replaces its record, matching the forward-declaration update rule
// execFuncDef applies to script-defined functions.
func (in *Interp) Bind(name string, params []ast.ParamDecl, retType types.Type, fn scope.NativeFunc) {
	if existing, ok := in.Global.LocalFunc(name); ok {
		existing.Params = params
		existing.ReturnType = retType
		existing.Native = fn
		return
	}
	in.Global.AddFunc(name, &scope.Func{
		Params:     params,
		ReturnType: retType,
		Native:     fn,
		Parent:     in.Global,
	})
}

// Call invokes a script-defined (or native-bound) global function by
// name from host code, performing the same arity and type checks as a
// script-level call (spec.md §4.6's `call(name, args[])`).
func (in *Interp) Call(name string, args []value.Value) (value.Value, bool) {
	fn, ok := in.Global.LocalFunc(name)
	if !ok {
		in.errorf(hostPos, "call to undefined function '%s'", name)
		return value.Value{}, false
	}
	if fn.Native == nil && fn.Body == nil {
		in.errorf(hostPos, "'%s' has no definition", name)
		return value.Value{}, false
	}
	if len(args) != len(fn.Params) {
		in.errorf(hostPos, "'%s' expects %d argument(s), got %d", name, len(fn.Params), len(args))
		return value.Value{}, false
	}
	return in.invokeBound(in.Global, hostPos, fn, nil, args)
}

// ArgLoad retrieves a bound parameter by name out of a native callback's
// argument scope, per spec.md §4.6's `arg_load(scope, name)`. The second
// return is false if s declares no such parameter.
func (in *Interp) ArgLoad(s *scope.Scope, name string) (value.Value, bool) {
	_, v := s.FindVar(name)
	if v == nil {
		return value.Value{}, false
	}
	return value.Load(in.Stack.Block, v.Offset, v.Type), true
}
