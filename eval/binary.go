package eval

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/lex"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// evalBinary dispatches a Binary node to the assignment family, the
// eager (both-sides-evaluated) logical operators, or plain arithmetic /
// comparison, per spec.md §4.2's precedence ladder and §9's note that
// &&/|| are not short-circuited.
func (in *Interp) evalBinary(s *scope.Scope, n *ast.Binary) (value.Value, bool) {
	switch n.Op {
	case lex.Assign:
		return in.evalAssign(s, n)
	case lex.OpAddAssn, lex.OpSubAssn, lex.OpMulAssn, lex.OpDivAssn:
		return in.evalCompoundAssign(s, n)
	case lex.OpAnd, lex.OpOr:
		return in.evalLogical(s, n)
	}

	lhs, ok := in.evalExpr(s, n.Lhs)
	if !ok {
		return value.Value{}, false
	}
	rhs, ok := in.evalExpr(s, n.Rhs)
	if !ok {
		return value.Value{}, false
	}

	switch n.Op {
	case lex.Plus:
		return in.evalAdd(n.Pos, lhs, rhs)
	case lex.Minus, lex.Star, lex.Slash:
		return in.evalArith(n.Pos, n.Op, lhs, rhs)
	case lex.Lt, lex.Gt, lex.OpLe, lex.OpGe, lex.OpEq, lex.OpNe:
		return in.evalCompare(n.Pos, n.Op, lhs, rhs)
	}
	in.errorf(n.Pos, "unhandled binary operator '%s'", n.Op)
	return value.Value{}, false
}

func (in *Interp) evalAssign(s *scope.Scope, n *ast.Binary) (value.Value, bool) {
	lv, ok := in.evalExpr(s, n.Lhs)
	if !ok {
		return value.Value{}, false
	}
	if !lv.IsLvalue() {
		in.errorf(n.Pos, "left-hand side of '=' is not assignable")
		return value.Value{}, false
	}
	rv, ok := in.evalExpr(s, n.Rhs)
	if !ok {
		return value.Value{}, false
	}
	casted, ok := in.coerce(n.Pos, rv, lv.Type)
	if !ok {
		return value.Value{}, false
	}
	value.Assign(lv.Origin.Base, lv.Origin.Offset, lv.Type, casted)
	casted.Origin = lv.Origin
	return casted, true
}

// compoundArithOp maps a compound-assignment operator to the plain
// arithmetic operator that composes with the store.
var compoundArithOp = map[lex.Kind]lex.Kind{
	lex.OpAddAssn: lex.Plus,
	lex.OpSubAssn: lex.Minus,
	lex.OpMulAssn: lex.Star,
	lex.OpDivAssn: lex.Slash,
}

// evalCompoundAssign implements += -= *= /=. String += always allocates a
// freshly concatenated block and rebinds the lvalue to it (spec.md §9's
// open question on string += identity: this reimplementation picks
// "always allocate", the same rule plain `+` uses for strings, rather
// than occasionally mutating in place).
func (in *Interp) evalCompoundAssign(s *scope.Scope, n *ast.Binary) (value.Value, bool) {
	lv, ok := in.evalExpr(s, n.Lhs)
	if !ok {
		return value.Value{}, false
	}
	if !lv.IsLvalue() {
		in.errorf(n.Pos, "left-hand side of '%s' is not assignable", n.Op)
		return value.Value{}, false
	}
	rv, ok := in.evalExpr(s, n.Rhs)
	if !ok {
		return value.Value{}, false
	}

	var result value.Value
	if lv.Type.Spec == types.String && !lv.Type.Array && n.Op == lex.OpAddAssn {
		if rv.Type.Spec != types.String || rv.Type.Array {
			in.errorf(n.Pos, "operator '+=' on a string requires a string operand, got %s", rv.Type)
			return value.Value{}, false
		}
		result = in.concatStrings(lv, rv)
	} else {
		arith, ok := in.evalArith(n.Pos, compoundArithOp[n.Op], lv, rv)
		if !ok {
			return value.Value{}, false
		}
		result, ok = in.coerce(n.Pos, arith, lv.Type)
		if !ok {
			return value.Value{}, false
		}
	}

	value.Assign(lv.Origin.Base, lv.Origin.Offset, lv.Type, result)
	result.Origin = lv.Origin
	return result, true
}

func (in *Interp) evalLogical(s *scope.Scope, n *ast.Binary) (value.Value, bool) {
	lhs, ok := in.evalExpr(s, n.Lhs)
	if !ok {
		return value.Value{}, false
	}
	rhs, ok := in.evalExpr(s, n.Rhs)
	if !ok {
		return value.Value{}, false
	}
	if !isI32Scalar(lhs.Type) || !isI32Scalar(rhs.Type) {
		in.errorf(n.Pos, "operator '%s' requires i32 operands, got %s and %s", n.Op, lhs.Type, rhs.Type)
		return value.Value{}, false
	}
	var res bool
	if n.Op == lex.OpAnd {
		res = truthy(lhs) && truthy(rhs)
	} else {
		res = truthy(lhs) || truthy(rhs)
	}
	return boolValue(res), true
}

// evalAdd special-cases string concatenation before falling back to
// numeric addition.
func (in *Interp) evalAdd(pos ast.Pos, lhs, rhs value.Value) (value.Value, bool) {
	if lhs.Type.Spec == types.String && !lhs.Type.Array && rhs.Type.Spec == types.String && !rhs.Type.Array {
		return in.concatStrings(lhs, rhs), true
	}
	return in.evalArith(pos, lex.Plus, lhs, rhs)
}

func (in *Interp) concatStrings(lhs, rhs value.Value) value.Value {
	blk := in.Heap.AllocString(string(stringBytes(lhs)) + string(stringBytes(rhs)))
	return value.Value{Type: types.StringType, Ref: blk}
}

func stringBytes(v value.Value) []byte {
	if blk := v.Block(); blk != nil {
		return blk.Bytes
	}
	return nil
}

// evalArith implements + - * / with int/float promotion: a mixed
// int/float pair is computed entirely in float, matching spec.md §4.4's
// "mixed int/float is promoted by coercing the int operand to float".
func (in *Interp) evalArith(pos ast.Pos, op lex.Kind, lhs, rhs value.Value) (value.Value, bool) {
	lf, rf, li, ri, isFloat, ok := numericPromote(lhs, rhs)
	if !ok {
		in.errorf(pos, "operator '%s' requires numeric operands, got %s and %s", op, lhs.Type, rhs.Type)
		return value.Value{}, false
	}
	if isFloat {
		var res float32
		switch op {
		case lex.Plus:
			res = lf + rf
		case lex.Minus:
			res = lf - rf
		case lex.Star:
			res = lf * rf
		case lex.Slash:
			if rf == 0 {
				in.errorf(pos, "division by zero")
				return value.Value{}, false
			}
			res = lf / rf
		}
		return value.Value{Type: types.F32Type, F32: res}, true
	}
	var res int32
	switch op {
	case lex.Plus:
		res = li + ri
	case lex.Minus:
		res = li - ri
	case lex.Star:
		res = li * ri
	case lex.Slash:
		if ri == 0 {
			in.errorf(pos, "division by zero")
			return value.Value{}, false
		}
		res = li / ri
	}
	return value.Value{Type: types.I32Type, I32: res}, true
}

func (in *Interp) evalCompare(pos ast.Pos, op lex.Kind, lhs, rhs value.Value) (value.Value, bool) {
	if op == lex.OpEq || op == lex.OpNe {
		eq, ok := in.valuesEqual(pos, lhs, rhs)
		if !ok {
			return value.Value{}, false
		}
		if op == lex.OpNe {
			eq = !eq
		}
		return boolValue(eq), true
	}

	lf, rf, li, ri, isFloat, ok := numericPromote(lhs, rhs)
	if !ok {
		in.errorf(pos, "operator '%s' requires numeric operands, got %s and %s", op, lhs.Type, rhs.Type)
		return value.Value{}, false
	}
	var res bool
	if isFloat {
		switch op {
		case lex.Lt:
			res = lf < rf
		case lex.Gt:
			res = lf > rf
		case lex.OpLe:
			res = lf <= rf
		case lex.OpGe:
			res = lf >= rf
		}
	} else {
		switch op {
		case lex.Lt:
			res = li < ri
		case lex.Gt:
			res = li > ri
		case lex.OpLe:
			res = li <= ri
		case lex.OpGe:
			res = li >= ri
		}
	}
	return boolValue(res), true
}

// valuesEqual implements == and !=: numeric comparison with promotion for
// i32/f32, and reference identity for string/array/class values (spec.md
// §9: strings compare by reference, there being no intrinsic value
// equality on them in the source).
func (in *Interp) valuesEqual(pos ast.Pos, lhs, rhs value.Value) (bool, bool) {
	if lf, rf, li, ri, isFloat, ok := numericPromote(lhs, rhs); ok {
		if isFloat {
			return lf == rf, true
		}
		return li == ri, true
	}
	if types.IsRef(lhs.Type) && types.IsRef(rhs.Type) {
		return lhs.Block() == rhs.Block(), true
	}
	in.errorf(pos, "cannot compare %s and %s", lhs.Type, rhs.Type)
	return false, false
}

func boolValue(b bool) value.Value {
	var i int32
	if b {
		i = 1
	}
	return value.Value{Type: types.I32Type, I32: i}
}

// numericPromote reports lhs and rhs as a float pair (if either is f32)
// or an int pair (if both are i32); ok is false for array operands or
// any non-numeric type.
func numericPromote(lhs, rhs value.Value) (lf, rf float32, li, ri int32, isFloat, ok bool) {
	if lhs.Type.Array || rhs.Type.Array {
		return 0, 0, 0, 0, false, false
	}
	lIsF := lhs.Type.Spec == types.F32
	rIsF := rhs.Type.Spec == types.F32
	lIsI := lhs.Type.Spec == types.I32
	rIsI := rhs.Type.Spec == types.I32
	if !(lIsF || lIsI) || !(rIsF || rIsI) {
		return 0, 0, 0, 0, false, false
	}
	if lIsF || rIsF {
		return valueAsFloat(lhs), valueAsFloat(rhs), 0, 0, true, true
	}
	return 0, 0, lhs.I32, rhs.I32, false, true
}

func valueAsFloat(v value.Value) float32 {
	if v.Type.Spec == types.F32 {
		return v.F32
	}
	return float32(v.I32)
}

func isI32Scalar(t types.Type) bool { return t.Spec == types.I32 && !t.Array }

// truthy is Cirno's C-style truth test: zero is false, anything else is
// true. Callers that accept a general expression (if/while/for
// conditions, &&/||) must check isI32Scalar first; truthy itself just
// reads the i32 payload.
func truthy(v value.Value) bool {
	return v.Type.Spec == types.I32 && !v.Type.Array && v.I32 != 0
}
