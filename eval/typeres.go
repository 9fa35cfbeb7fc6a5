package eval

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/lex"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// resolveType turns a parsed ast.TypeNode into a types.Type, looking up
// class names in s's lexical chain. An ast.TypeNode{} zero value (no
// return type written) resolves to types.NoneType.
func (in *Interp) resolveType(s *scope.Scope, tn ast.TypeNode) (types.Type, bool) {
	var t types.Type
	switch tn.Spec {
	case lex.EOF:
		t = types.NoneType
	case lex.KwI32:
		t = types.I32Type
	case lex.KwF32:
		t = types.F32Type
	case lex.KwString:
		t = types.StringType
	case lex.KwClass:
		class := s.FindClass(tn.ClassName)
		if class == nil {
			in.errorf(tn.Pos, "unknown class '%s'", tn.ClassName)
			return types.NoneType, false
		}
		t = types.ClassType(class)
	default:
		in.errorf(tn.Pos, "expected a type")
		return types.NoneType, false
	}
	t.Array = tn.Array
	return t, true
}

func (in *Interp) errorf(pos ast.Pos, format string, args ...interface{}) {
	in.Diags.Errorf(pos.Path, pos.Line, format, args...)
}

// coerce casts v to target's type where legal: an exact type match, or
// an i32 rvalue widened to f32. Reference-kind values (string/array/
// class/fn) only ever copy their reference and so must already match
// target exactly -- assignment, declaration-with-initializer, parameter
// binding and return all share this one rule.
func (in *Interp) coerce(pos ast.Pos, v value.Value, target types.Type) (value.Value, bool) {
	if v.Type.Equal(target) {
		return v, true
	}
	if target.Spec == types.F32 && !target.Array && v.Type.Spec == types.I32 && !v.Type.Array {
		return value.Value{Type: types.F32Type, F32: float32(v.I32)}, true
	}
	in.errorf(pos, "type mismatch: expected %s, got %s", target, v.Type)
	return value.Value{}, false
}

// declareVar adds name to sc's variable table after checking the
// process stack still has room for it, reporting the stack-overflow
// diagnostic spec.md §4.4 requires when a declaration would exceed the
// stack's byte budget.
func (in *Interp) declareVar(sc *scope.Scope, pos ast.Pos, name string, t types.Type) (*scope.Var, bool) {
	width := types.SizeOf(t)
	if err := in.Stack.CheckFits(sc.Size, width); err != nil {
		in.errorf(pos, "%s", err)
		return nil, false
	}
	return sc.AddVar(name, t), true
}
