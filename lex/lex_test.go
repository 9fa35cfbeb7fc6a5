package lex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vv4t/cirno/diag"
	"github.com/vv4t/cirno/internal/source"
)

func lexString(t *testing.T, src string) (*Lexeme, *diag.List) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cirno")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	diags := &diag.List{}
	lx := New(source.NewSet(), diags)
	head, err := lx.Lex(path)
	require.NoError(t, err)
	return head, diags
}

func kinds(head *Lexeme) []Kind {
	var out []Kind
	for l := head; l != nil; l = l.Next {
		out = append(out, l.Kind)
	}
	return out
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	head, diags := lexString(t, "fn main(): i32 { return 1; }")
	require.False(t, diags.Failed())
	require.Equal(t, []Kind{
		KwFn, Identifier, LParen, RParen, Colon, KwI32, LBrace,
		KwReturn, ConstInteger, Semi, RBrace, EOF,
	}, kinds(head))
}

func TestLexNumberLiterals(t *testing.T) {
	head, _ := lexString(t, "42 3.5")
	require.Equal(t, ConstInteger, head.Kind)
	require.Equal(t, int32(42), head.Ival)
	require.Equal(t, ConstFloat, head.Next.Kind)
	require.InDelta(t, 3.5, float64(head.Next.Fval), 1e-6)
}

func TestLexStringEscapes(t *testing.T) {
	head, _ := lexString(t, `"a\nb"`)
	require.Equal(t, ConstString, head.Kind)
	require.Equal(t, "a\nb", head.Str)
}

func TestLexUnterminatedStringIsAnError(t *testing.T) {
	_, diags := lexString(t, `"oops`)
	require.True(t, diags.Failed())
}

func TestLexOperatorsGreedyMatch(t *testing.T) {
	head, _ := lexString(t, "+= - ++ <= <")
	require.Equal(t, []Kind{OpAddAssn, Minus, OpInc, OpLe, Lt, EOF}, kinds(head))
}

func TestLexUnknownByteWarns(t *testing.T) {
	_, diags := lexString(t, "i32 x = 1 @ 2;")
	require.False(t, diags.Failed())
	require.NotEmpty(t, diags.Items())
	require.Equal(t, diag.Warning, diags.Items()[0].Severity)
}

func TestLexIncludeSplicesTokensOnce(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.cirno")
	require.NoError(t, os.WriteFile(libPath, []byte("i32 shared;"), 0o644))
	mainPath := filepath.Join(dir, "main.cirno")
	require.NoError(t, os.WriteFile(mainPath, []byte(
		"#include \"lib.cirno\"\n#include \"lib.cirno\"\nprint shared;"), 0o644))

	diags := &diag.List{}
	lx := New(source.NewSet(), diags)
	head, err := lx.Lex(mainPath)
	require.NoError(t, err)
	require.False(t, diags.Failed())
	require.Equal(t, []Kind{
		KwI32, Identifier, Semi, // from lib.cirno, once
		KwPrint, Identifier, Semi, // from main.cirno
		EOF,
	}, kinds(head))
}
