// Package parse is Cirno's recursive-descent, operator-precedence
// parser: it consumes the Lexeme list lex.Lexer produces and builds an
// ast.Stmt sequence for the program.
//
// The precedence ladder (lowest to highest: assignment, ||, &&, equality,
// relational, additive, multiplicative, unary, postfix, primary) matches
// spec.md §4.2. Diagnostics are collected into a running list rather than
// returned, and the parser keeps advancing after an error so later
// mistakes are still reported instead of bailing out on the first one.
package parse

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/diag"
	"github.com/vv4t/cirno/lex"
)

// Parser turns a Lexeme stream into a statement sequence.
type Parser struct {
	diags *diag.List
	cur   *lex.Lexeme
}

// New creates a Parser reading from head, reporting errors into diags.
func New(head *lex.Lexeme, diags *diag.List) *Parser {
	return &Parser{diags: diags, cur: head}
}

// Parse parses a whole program: a sequence of top-level statements
// (declarations, function and class definitions, and ordinary
// statements) until EOF.
func Parse(head *lex.Lexeme, diags *diag.List) []ast.Stmt {
	p := New(head, diags)
	var body []ast.Stmt
	for p.cur.Kind != lex.EOF {
		s := p.parseStmt()
		if s != nil {
			body = append(body, s)
		}
	}
	return body
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{Path: p.cur.Path, Line: p.cur.Line}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.diags.Errorf(p.cur.Path, p.cur.Line, format, args...)
}

// advance consumes and returns the current lexeme.
func (p *Parser) advance() *lex.Lexeme {
	l := p.cur
	if p.cur.Kind != lex.EOF {
		p.cur = p.cur.Next
	}
	return l
}

func (p *Parser) at(k lex.Kind) bool { return p.cur.Kind == k }

// expect consumes the current lexeme if it matches kind, else reports an
// "expected X before Y" diagnostic and still advances, so parsing makes
// forward progress instead of looping forever on a malformed file.
func (p *Parser) expect(kind lex.Kind) *lex.Lexeme {
	if p.cur.Kind == kind {
		return p.advance()
	}
	p.errorf("expected %s before %s", kind, describeLexeme(p.cur))
	return p.advance()
}

func describeLexeme(l *lex.Lexeme) string {
	switch l.Kind {
	case lex.Identifier:
		return "'" + l.Ident + "'"
	case lex.EOF:
		return "end of file"
	default:
		return "'" + l.Kind.String() + "'"
	}
}

func (p *Parser) identName() string {
	l := p.expect(lex.Identifier)
	return l.Ident
}

func isTypeStart(k lex.Kind) bool {
	switch k {
	case lex.KwI32, lex.KwF32, lex.KwString, lex.KwClass:
		return true
	default:
		return false
	}
}
