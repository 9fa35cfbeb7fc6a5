package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/diag"
	"github.com/vv4t/cirno/internal/source"
	"github.com/vv4t/cirno/lex"
)

func parseString(t *testing.T, src string) ([]ast.Stmt, *diag.List) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cirno")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	diags := &diag.List{}
	lx := lex.New(source.NewSet(), diags)
	head, err := lx.Lex(path)
	require.NoError(t, err)
	return Parse(head, diags), diags
}

// cmpOpts ignores Pos fields (line/path) so tests can assert tree shape
// without hardcoding brittle line numbers.
var cmpOpts = cmpopts.IgnoreFields(ast.Pos{}, "Path", "Line")

func TestParseDeclWithInit(t *testing.T) {
	body, diags := parseString(t, "i32 x = 1 + 2;")
	require.False(t, diags.Failed())
	require.Len(t, body, 1)

	want := &ast.Decl{
		Type: ast.TypeNode{Spec: lex.KwI32},
		Name: "x",
		Init: &ast.Binary{Op: lex.Plus,
			Lhs: &ast.IntLit{Value: 1},
			Rhs: &ast.IntLit{Value: 2},
		},
	}
	if diff := cmp.Diff(want, body[0], cmpOpts); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestParsePrecedence(t *testing.T) {
	body, diags := parseString(t, "i32 x = 1 + 2 * 3;")
	require.False(t, diags.Failed())
	decl := body[0].(*ast.Decl)
	add, ok := decl.Init.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, lex.Plus, add.Op)
	mul, ok := add.Rhs.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, lex.Star, mul.Op)
}

func TestParseFuncDef(t *testing.T) {
	body, diags := parseString(t, "fn add(i32 a, i32 b): i32 { return a + b; }")
	require.False(t, diags.Failed())
	require.Len(t, body, 1)
	fn, ok := body[0].(*ast.FuncDef)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.False(t, fn.IsCtor)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name)
	require.Equal(t, lex.KwI32, fn.RetType.Spec)
	require.Len(t, fn.Body, 1)
}

func TestParseConstructorName(t *testing.T) {
	body, diags := parseString(t, "class_def Foo { fn +new() {} };")
	require.False(t, diags.Failed())
	cd := body[0].(*ast.ClassDef)
	require.Equal(t, "Foo", cd.Name)
	require.Len(t, cd.Body, 1)
	ctor := cd.Body[0].(*ast.FuncDef)
	require.Equal(t, "+new", ctor.Name)
	require.True(t, ctor.IsCtor)
}

func TestParseIfWhileForShapes(t *testing.T) {
	body, diags := parseString(t, `
		if (1) print 1; else print 2;
		while (1) { break; }
		for (i32 i = 0; i < 10; i++) { continue; }
	`)
	require.False(t, diags.Failed())
	require.Len(t, body, 3)
	_, ok := body[0].(*ast.If)
	require.True(t, ok)
	_, ok = body[1].(*ast.While)
	require.True(t, ok)
	forStmt, ok := body[2].(*ast.For)
	require.True(t, ok)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Inc)
}

func TestParsePostfixChain(t *testing.T) {
	body, diags := parseString(t, "x = a.b[0].c(1, 2)++;")
	require.False(t, diags.Failed())
	exprStmt := body[0].(*ast.ExprStmt)
	assign := exprStmt.Expr.(*ast.Binary)
	require.Equal(t, lex.Assign, assign.Op)
	post, ok := assign.Rhs.(*ast.PostOp)
	require.True(t, ok)
	require.Equal(t, lex.OpInc, post.Op)
	call, ok := post.Target.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestParseArrayInitForms(t *testing.T) {
	body, diags := parseString(t, `
		i32[] a = array_init<i32>{1, 2, 3};
		i32[] b = array_init<i32>(5);
	`)
	require.False(t, diags.Failed())
	listDecl := body[0].(*ast.Decl)
	list, ok := listDecl.Init.(*ast.ArrayInitList)
	require.True(t, ok)
	require.Len(t, list.Elems, 3)

	sizeDecl := body[1].(*ast.Decl)
	sized, ok := sizeDecl.Init.(*ast.ArrayInitSize)
	require.True(t, ok)
	require.IsType(t, &ast.IntLit{}, sized.Size)
}

func TestParseMissingSemiReportsErrorButKeepsGoing(t *testing.T) {
	_, diags := parseString(t, "i32 x = 1\ni32 y = 2;")
	require.True(t, diags.Failed())
	require.NotEmpty(t, diags.Items())
}
