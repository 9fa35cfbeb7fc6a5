// Package stdlib provides Cirno's native standard-library bindings:
// math functions, a line/char input shim, a screen-clear hook, and a
// debug allocator report. Per spec.md §1 these are "thin adapters over
// the host API", not part of the core runtime -- everything here is
// built on top of the cirno package's public Bind/Call surface, never
// on eval's internals directly.
package stdlib

import (
	"math"

	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/cirno"
	"github.com/vv4t/cirno/lex"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

func f32Param(name string) ast.ParamDecl {
	return ast.ParamDecl{Type: ast.TypeNode{Spec: lex.KwF32}, Name: name}
}

// bindUnaryF32 registers name as a native f32 -> f32 function that
// reads its single "x" parameter with ArgLoad and fills the return
// slot with fn(x), matching the NativeFunc contract eval/call.go's
// invokeBound drives for every bound function.
func bindUnaryF32(rt *cirno.Runtime, name string, fn func(float32) float32) {
	params := []ast.ParamDecl{f32Param("x")}
	rt.Bind(name, params, types.F32Type, func(args *scope.Scope, ret *value.Value) bool {
		x, ok := rt.ArgLoad(args, "x")
		if !ok {
			return false
		}
		*ret = value.Value{Type: types.F32Type, F32: fn(x.F32)}
		return true
	})
}

// Math installs sin, cos, sqrt and abs as native f32 -> f32 functions
// in rt's global scope, grounded on the source's math.c native
// bindings (xstdlib_sin/cos/sqrt/abs).
func Math(rt *cirno.Runtime) {
	bindUnaryF32(rt, "sin", func(x float32) float32 { return float32(math.Sin(float64(x))) })
	bindUnaryF32(rt, "cos", func(x float32) float32 { return float32(math.Cos(float64(x))) })
	bindUnaryF32(rt, "sqrt", func(x float32) float32 { return float32(math.Sqrt(float64(x))) })
	bindUnaryF32(rt, "abs", func(x float32) float32 { return float32(math.Abs(float64(x))) })
}
