package eval

import (
	"fmt"
	"strconv"

	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// execBody runs each statement of stmts in order against s, stopping as
// soon as one fails or s picks up a Returned/Breaking/Continuing flag
// (spec.md §4.4: "run each statement until the list ends or one of
// returned, continuing, breaking is set").
func (in *Interp) execBody(s *scope.Scope, stmts []ast.Stmt) bool {
	for _, st := range stmts {
		if !in.execStmt(s, st) {
			return false
		}
		if s.Returned || s.Breaking || s.Continuing {
			break
		}
	}
	return true
}

func (in *Interp) execStmt(s *scope.Scope, st ast.Stmt) bool {
	switch n := st.(type) {
	case *ast.ExprStmt:
		_, ok := in.evalExpr(s, n.Expr)
		return ok
	case *ast.Decl:
		return in.execDecl(s, n)
	case *ast.FuncDef:
		return in.execFuncDef(s, n)
	case *ast.ClassDef:
		return in.execClassDef(s, n)
	case *ast.If:
		return in.execIf(s, n)
	case *ast.While:
		return in.execWhile(s, n)
	case *ast.For:
		return in.execFor(s, n)
	case *ast.Return:
		return in.execReturn(s, n)
	case *ast.Ctrl:
		return in.execCtrl(s, n)
	case *ast.Print:
		return in.execPrint(s, n)
	}
	in.errorf(st.At(), "unhandled statement")
	return false
}

func (in *Interp) execDecl(s *scope.Scope, n *ast.Decl) bool {
	if _, exists := s.LocalVar(n.Name); exists {
		in.errorf(n.Pos, "redefinition of '%s'", n.Name)
		return false
	}
	t, ok := in.resolveType(s, n.Type)
	if !ok {
		return false
	}

	var init value.Value
	if n.Init != nil {
		iv, ok := in.evalExpr(s, n.Init)
		if !ok {
			return false
		}
		init, ok = in.coerce(n.Init.At(), iv, t)
		if !ok {
			return false
		}
	} else {
		init = value.Value{Type: t}
	}

	v, ok := in.declareVar(s, n.Pos, n.Name, t)
	if !ok {
		return false
	}
	value.Assign(in.Stack.Block, v.Offset, t, init)
	return true
}

// execFuncDef registers name in s. A nil Body is a forward declaration:
// its signature is recorded so calls type-check, but invoking it before
// a matching definition with a body arrives is a "no definition" runtime
// error (eval/call.go's invoke). A later FuncDef with the same name
// supplies the body onto the existing record rather than erroring,
// matching spec.md §4.4's "forward declarations without a body update
// the existing record's signature".
func (in *Interp) execFuncDef(s *scope.Scope, n *ast.FuncDef) bool {
	retType, ok := in.resolveType(s, n.RetType)
	if !ok {
		return false
	}
	if existing, ok := s.LocalFunc(n.Name); ok {
		if existing.Body != nil && n.Body != nil {
			in.errorf(n.Pos, "function '%s' is already defined", n.Name)
			return false
		}
		existing.Params = n.Params
		existing.ReturnType = retType
		if n.Body != nil {
			existing.Body = n.Body
		}
		return true
	}
	s.AddFunc(n.Name, &scope.Func{
		Params:     n.Params,
		Body:       n.Body,
		ReturnType: retType,
		Parent:     s,
		IsCtor:     n.IsCtor,
	})
	return true
}

// execClassDef registers a class scope under n.Name: fields become the
// class scope's variables (offsets within an instance block, starting
// fresh at 0 rather than inheriting s's stack high-water mark), and
// methods/constructor become its functions, each recording s -- not the
// class scope -- as its lexical Parent, since method bodies reach fields
// and sibling methods only through an explicit `this.`, never through
// bare-identifier lookup (see eval/expr.go's evalIdent).
func (in *Interp) execClassDef(s *scope.Scope, n *ast.ClassDef) bool {
	if _, exists := s.LocalClass(n.Name); exists {
		in.errorf(n.Pos, "class '%s' is already defined", n.Name)
		return false
	}
	classScope := scope.New(s, types.NoneType, true)
	classScope.Size = 0
	s.AddClass(n.Name, classScope)

	for _, stmt := range n.Body {
		switch decl := stmt.(type) {
		case *ast.Decl:
			if _, exists := classScope.LocalVar(decl.Name); exists {
				in.errorf(decl.Pos, "field '%s' is already declared", decl.Name)
				return false
			}
			if decl.Init != nil {
				in.errorf(decl.Pos, "class fields cannot have an initializer")
				return false
			}
			t, ok := in.resolveType(classScope, decl.Type)
			if !ok {
				return false
			}
			classScope.AddVar(decl.Name, t)
		case *ast.FuncDef:
			if _, exists := classScope.LocalFunc(decl.Name); exists {
				in.errorf(decl.Pos, "method '%s' is already defined", decl.Name)
				return false
			}
			retType, ok := in.resolveType(s, decl.RetType)
			if !ok {
				return false
			}
			classScope.AddFunc(decl.Name, &scope.Func{
				Params:     decl.Params,
				Body:       decl.Body,
				ReturnType: retType,
				Parent:     s,
				Class:      classScope,
				IsCtor:     decl.IsCtor,
			})
		default:
			in.errorf(stmt.At(), "unexpected statement in class body")
			return false
		}
	}
	return true
}

func (in *Interp) execIf(s *scope.Scope, n *ast.If) bool {
	cond, ok := in.evalExpr(s, n.Cond)
	if !ok {
		return false
	}
	if !isI32Scalar(cond.Type) {
		in.errorf(n.Pos, "if condition must be i32, got %s", cond.Type)
		return false
	}
	if truthy(cond) {
		return in.execBlock(s, n.Then)
	}
	if n.Else != nil {
		return in.execBlock(s, n.Else)
	}
	return true
}

// execBlock runs stmts in a fresh non-isolating child scope of parent
// (spec.md §4.4: "a block body introduces a child scope... so inner
// declarations don't collide with the enclosing function's"), wiring
// parent.Child as the GC root for the duration, then propagates
// return/break/continue back up to parent.
func (in *Interp) execBlock(parent *scope.Scope, stmts []ast.Stmt) bool {
	child := scope.New(parent, parent.ReturnType, false)
	parent.Child = child
	ok := in.execBody(child, stmts)
	parent.Child = nil
	propagate(parent, child)
	return ok
}

// propagate copies a finished child scope's returned/breaking/continuing
// state up to its parent, matching spec.md §4.4's "break/continue flags
// are propagated to the parent".
func propagate(parent, child *scope.Scope) {
	if child.Returned {
		parent.Returned = true
		parent.ReturnValue = child.ReturnValue
	}
	if child.Breaking {
		parent.Breaking = true
	}
	if child.Continuing {
		parent.Continuing = true
	}
}

func (in *Interp) execWhile(s *scope.Scope, n *ast.While) bool {
	in.loopDepth++
	defer func() { in.loopDepth-- }()

	for {
		cond, ok := in.evalExpr(s, n.Cond)
		if !ok {
			return false
		}
		if !isI32Scalar(cond.Type) {
			in.errorf(n.Pos, "while condition must be i32, got %s", cond.Type)
			return false
		}
		if !truthy(cond) {
			return true
		}

		iter := scope.New(s, s.ReturnType, false)
		s.Child = iter
		ok2 := in.execBody(iter, n.Body)
		in.collect()
		s.Child = nil
		propagate(s, iter)
		if !ok2 {
			return false
		}
		if s.Returned {
			return true
		}
		if s.Breaking {
			s.Breaking = false
			return true
		}
		s.Continuing = false
	}
}

// execFor opens one scope (header) that lives for the loop's whole
// lifetime and holds the init statement's variable (if any), so it stays
// visible to cond/inc/body across iterations; each iteration's body runs
// in its own nested block scope so per-iteration declarations don't
// accumulate. Per spec.md §9's REDESIGN note, inc is evaluated purely
// for its side effect and cond is always re-evaluated fresh afterward --
// the source's "inc's result overwrites the condition" bug is not
// reproduced.
func (in *Interp) execFor(s *scope.Scope, n *ast.For) bool {
	in.loopDepth++
	defer func() { in.loopDepth-- }()

	header := scope.New(s, s.ReturnType, false)
	s.Child = header
	defer func() { s.Child = nil }()

	if n.Init != nil {
		if !in.execStmt(header, n.Init) {
			propagate(s, header)
			return false
		}
	}

	for {
		if n.Cond != nil {
			cond, ok := in.evalExpr(header, n.Cond)
			if !ok {
				propagate(s, header)
				return false
			}
			if !isI32Scalar(cond.Type) {
				in.errorf(n.Pos, "for condition must be i32, got %s", cond.Type)
				propagate(s, header)
				return false
			}
			if !truthy(cond) {
				break
			}
		}

		body := scope.New(header, header.ReturnType, false)
		header.Child = body
		ok := in.execBody(body, n.Body)
		in.collect()
		header.Child = nil
		propagate(header, body)
		if !ok {
			propagate(s, header)
			return false
		}
		if header.Returned {
			break
		}
		if header.Breaking {
			header.Breaking = false
			break
		}
		header.Continuing = false

		if n.Inc != nil {
			if _, ok := in.evalExpr(header, n.Inc); !ok {
				propagate(s, header)
				return false
			}
		}
	}
	propagate(s, header)
	return true
}

func (in *Interp) execReturn(s *scope.Scope, n *ast.Return) bool {
	var v value.Value
	if n.Value != nil {
		rv, ok := in.evalExpr(s, n.Value)
		if !ok {
			return false
		}
		v, ok = in.coerce(n.Pos, rv, s.ReturnType)
		if !ok {
			return false
		}
	} else {
		if s.ReturnType.Spec != types.None {
			in.errorf(n.Pos, "missing return value of type %s", s.ReturnType)
			return false
		}
		v = value.Value{Type: types.NoneType}
	}
	v.Origin = value.Origin{}
	s.ReturnValue = v
	s.Returned = true
	return true
}

func ctrlName(k ast.CtrlKind) string {
	if k == ast.CtrlBreak {
		return "break"
	}
	return "continue"
}

func (in *Interp) execCtrl(s *scope.Scope, n *ast.Ctrl) bool {
	if in.loopDepth == 0 {
		in.errorf(n.Pos, "'%s' used outside of a loop", ctrlName(n.Kind))
		return false
	}
	if n.Kind == ast.CtrlBreak {
		s.Breaking = true
	} else {
		s.Continuing = true
	}
	return true
}

func (in *Interp) execPrint(s *scope.Scope, n *ast.Print) bool {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		v, ok := in.evalExpr(s, a)
		if !ok {
			return false
		}
		parts[i] = formatValue(v)
	}
	for _, p := range parts {
		fmt.Fprintf(in.Out, "%s ", p)
	}
	fmt.Fprintln(in.Out)
	return true
}

// formatValue renders a Value the way `print` displays it. spec.md §9
// leaves the trailing-space question to the implementer; this
// reimplementation keeps the source's "value followed by a space" per
// argument (see spec.md §8's scenarios, which all show a trailing space
// before the newline).
func formatValue(v value.Value) string {
	switch {
	case v.Type.Array:
		return fmt.Sprintf("<array %s[%d]>", v.Type.Spec, arrayLen(v))
	case v.Type.Spec == types.I32:
		return strconv.FormatInt(int64(v.I32), 10)
	case v.Type.Spec == types.F32:
		return strconv.FormatFloat(float64(v.F32), 'f', 6, 32)
	case v.Type.Spec == types.String:
		if blk := v.Block(); blk != nil {
			return string(blk.Bytes)
		}
		return ""
	case v.Type.Spec == types.Class:
		return fmt.Sprintf("<%s instance>", v.Type)
	case v.Type.Spec == types.Fn:
		return "<fn>"
	default:
		return "<none>"
	}
}
