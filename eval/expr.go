package eval

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/lex"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// evalExpr is the evaluator's per-syntax-category expression function:
// one case per ast.Expr concrete type, recursing down the tree and
// carrying results in a value.Value. A false second return means a
// diagnostic was already recorded into in.Diags.
func (in *Interp) evalExpr(s *scope.Scope, e ast.Expr) (value.Value, bool) {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Value{Type: types.I32Type, I32: n.Value}, true
	case *ast.FloatLit:
		return value.Value{Type: types.F32Type, F32: n.Value}, true
	case *ast.StringLit:
		blk := in.Heap.AllocString(n.Value)
		return value.Value{Type: types.StringType, Ref: blk}, true
	case *ast.Ident:
		return in.evalIdent(s, n)
	case *ast.Unary:
		return in.evalUnary(s, n)
	case *ast.Binary:
		return in.evalBinary(s, n)
	case *ast.Index:
		return in.evalIndex(s, n)
	case *ast.Direct:
		return in.evalDirect(s, n)
	case *ast.Call:
		return in.evalCall(s, n)
	case *ast.New:
		return in.evalNew(s, n)
	case *ast.ArrayInitList:
		return in.evalArrayInitList(s, n)
	case *ast.ArrayInitSize:
		return in.evalArrayInitSize(s, n)
	case *ast.PostOp:
		return in.evalPostOp(s, n)
	}
	in.errorf(e.At(), "unhandled expression")
	return value.Value{}, false
}

func (in *Interp) evalIdent(s *scope.Scope, n *ast.Ident) (value.Value, bool) {
	if _, v := s.FindVar(n.Name); v != nil {
		return value.Load(in.Stack.Block, v.Offset, v.Type), true
	}
	if fn := s.FindFunc(n.Name); fn != nil {
		// Methods are only reachable through their class's Direct member
		// table, never through a bare identifier (a call scope's search
		// parent is the scope enclosing the class, not the class scope
		// itself), so a found fn here is always a free function and
		// needs no receiver.
		return value.Value{Type: types.FnType, Ref: fn}, true
	}
	in.errorf(n.Pos, "undefined identifier '%s'", n.Name)
	return value.Value{}, false
}

func (in *Interp) evalUnary(s *scope.Scope, n *ast.Unary) (value.Value, bool) {
	v, ok := in.evalExpr(s, n.Rhs)
	if !ok {
		return value.Value{}, false
	}
	switch n.Op {
	case lex.Minus:
		switch {
		case v.Type.Spec == types.F32 && !v.Type.Array:
			return value.Value{Type: types.F32Type, F32: -v.F32}, true
		case v.Type.Spec == types.I32 && !v.Type.Array:
			return value.Value{Type: types.I32Type, I32: -v.I32}, true
		}
		in.errorf(n.Pos, "operator '-' requires a numeric operand, got %s", v.Type)
		return value.Value{}, false
	case lex.Bang:
		if !isI32Scalar(v.Type) {
			in.errorf(n.Pos, "operator '!' requires an i32 operand, got %s", v.Type)
			return value.Value{}, false
		}
		var iv int32
		if !truthy(v) {
			iv = 1
		}
		return value.Value{Type: types.I32Type, I32: iv}, true
	}
	in.errorf(n.Pos, "unhandled unary operator")
	return value.Value{}, false
}

func (in *Interp) evalIndex(s *scope.Scope, n *ast.Index) (value.Value, bool) {
	base, ok := in.evalExpr(s, n.Base)
	if !ok {
		return value.Value{}, false
	}
	if !base.Type.Array {
		in.errorf(n.Pos, "cannot index non-array type %s", base.Type)
		return value.Value{}, false
	}
	idx, ok := in.evalExpr(s, n.Idx)
	if !ok {
		return value.Value{}, false
	}
	if idx.Type.Spec != types.I32 || idx.Type.Array {
		in.errorf(n.Pos, "array index must be i32, got %s", idx.Type)
		return value.Value{}, false
	}
	blk := base.Block()
	if blk == nil {
		in.errorf(n.Pos, "index of a null array")
		return value.Value{}, false
	}
	elemType := base.Type
	elemType.Array = false
	width := types.SizeOf(elemType)
	i := int(idx.I32)
	if i < 0 || width == 0 || (i+1)*width > blk.Size() {
		in.errorf(n.Pos, "array index %d out of bounds", i)
		return value.Value{}, false
	}
	return value.Load(blk, i*width, elemType), true
}

func (in *Interp) evalDirect(s *scope.Scope, n *ast.Direct) (value.Value, bool) {
	base, ok := in.evalExpr(s, n.Base)
	if !ok {
		return value.Value{}, false
	}

	if base.Type.Array {
		if n.Name != "length" {
			in.errorf(n.Pos, "array has no member '%s'", n.Name)
			return value.Value{}, false
		}
		return value.Value{Type: types.I32Type, I32: int32(arrayLen(base))}, true
	}

	if base.Type.Spec == types.String {
		if n.Name != "length" {
			in.errorf(n.Pos, "string has no member '%s'", n.Name)
			return value.Value{}, false
		}
		ln := 0
		if blk := base.Block(); blk != nil {
			ln = blk.Size()
		}
		return value.Value{Type: types.I32Type, I32: int32(ln)}, true
	}

	if base.Type.Spec != types.Class {
		in.errorf(n.Pos, "cannot access member '%s' of %s", n.Name, base.Type)
		return value.Value{}, false
	}
	classScope, _ := base.Type.Class.(*scope.Scope)
	if classScope == nil {
		in.errorf(n.Pos, "internal: class type missing its scope")
		return value.Value{}, false
	}
	instance := base.Block()
	if instance == nil {
		in.errorf(n.Pos, "member access on a null instance")
		return value.Value{}, false
	}
	if fv, ok := classScope.LocalVar(n.Name); ok {
		return value.Load(instance, fv.Offset, fv.Type), true
	}
	if fn, ok := classScope.LocalFunc(n.Name); ok {
		return value.Value{Type: types.FnType, Ref: fn, Recv: instance}, true
	}
	in.errorf(n.Pos, "class '%s' has no member '%s'", classScope.ClassName(), n.Name)
	return value.Value{}, false
}

func (in *Interp) evalPostOp(s *scope.Scope, n *ast.PostOp) (value.Value, bool) {
	lv, ok := in.evalExpr(s, n.Target)
	if !ok {
		return value.Value{}, false
	}
	if !lv.IsLvalue() {
		in.errorf(n.Pos, "operand of '%s' must be assignable", n.Op)
		return value.Value{}, false
	}
	old := lv
	var nv value.Value
	switch {
	case lv.Type.Spec == types.I32 && !lv.Type.Array:
		delta := int32(1)
		if n.Op == lex.OpDec {
			delta = -1
		}
		nv = value.Value{Type: types.I32Type, I32: lv.I32 + delta}
	case lv.Type.Spec == types.F32 && !lv.Type.Array:
		delta := float32(1)
		if n.Op == lex.OpDec {
			delta = -1
		}
		nv = value.Value{Type: types.F32Type, F32: lv.F32 + delta}
	default:
		in.errorf(n.Pos, "operand of '%s' must be numeric, got %s", n.Op, lv.Type)
		return value.Value{}, false
	}
	value.Assign(lv.Origin.Base, lv.Origin.Offset, lv.Type, nv)
	return old, true
}

func (in *Interp) evalArrayInitList(s *scope.Scope, n *ast.ArrayInitList) (value.Value, bool) {
	elemType, ok := in.resolveType(s, n.ElemType)
	if !ok {
		return value.Value{}, false
	}
	width := types.SizeOf(elemType)
	blk := in.Heap.Alloc(width * len(n.Elems))
	for i, el := range n.Elems {
		v, ok := in.evalExpr(s, el)
		if !ok {
			return value.Value{}, false
		}
		casted, ok := in.coerce(el.At(), v, elemType)
		if !ok {
			return value.Value{}, false
		}
		value.Assign(blk, i*width, elemType, casted)
	}
	return value.Value{Type: types.Array(elemType), Ref: blk}, true
}

func (in *Interp) evalArrayInitSize(s *scope.Scope, n *ast.ArrayInitSize) (value.Value, bool) {
	elemType, ok := in.resolveType(s, n.ElemType)
	if !ok {
		return value.Value{}, false
	}
	szv, ok := in.evalExpr(s, n.Size)
	if !ok {
		return value.Value{}, false
	}
	if szv.Type.Spec != types.I32 || szv.Type.Array {
		in.errorf(n.Pos, "array size must be i32, got %s", szv.Type)
		return value.Value{}, false
	}
	if szv.I32 < 0 {
		in.errorf(n.Pos, "array size must be non-negative")
		return value.Value{}, false
	}
	width := types.SizeOf(elemType)
	blk := in.Heap.Alloc(width * int(szv.I32))
	return value.Value{Type: types.Array(elemType), Ref: blk}, true
}

// arrayLen derives an array Value's element count from its block size and
// element width: there is no separate length field, an array block is
// always exactly as wide as its contents.
func arrayLen(v value.Value) int {
	blk := v.Block()
	if blk == nil {
		return 0
	}
	elemType := v.Type
	elemType.Array = false
	width := types.SizeOf(elemType)
	if width == 0 {
		return 0
	}
	return blk.Size() / width
}
