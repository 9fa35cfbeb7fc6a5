package parse

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/lex"
)

// parseStmt dispatches on the current lexeme to produce one top-level or
// nested statement.
func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.at(lex.KwFn):
		return p.parseFuncDef()
	case p.at(lex.KwClassDef):
		return p.parseClassDef()
	case isTypeStart(p.cur.Kind):
		s := p.parseDecl()
		p.expect(lex.Semi)
		return s
	case p.at(lex.KwIf):
		return p.parseIf()
	case p.at(lex.KwWhile):
		return p.parseWhile()
	case p.at(lex.KwFor):
		return p.parseFor()
	case p.at(lex.KwBreak):
		pos := p.pos()
		p.advance()
		p.expect(lex.Semi)
		return &ast.Ctrl{Pos: pos, Kind: ast.CtrlBreak}
	case p.at(lex.KwContinue):
		pos := p.pos()
		p.advance()
		p.expect(lex.Semi)
		return &ast.Ctrl{Pos: pos, Kind: ast.CtrlContinue}
	case p.at(lex.KwReturn):
		return p.parseReturn()
	case p.at(lex.KwPrint):
		return p.parsePrint()
	default:
		pos := p.pos()
		e := p.parseExpr()
		p.expect(lex.Semi)
		return &ast.ExprStmt{Pos: pos, Expr: e}
	}
}

// parseBody parses a brace-delimited block or, per spec.md §4.2, a
// single bare statement.
func (p *Parser) parseBody() []ast.Stmt {
	if p.at(lex.LBrace) {
		p.advance()
		var body []ast.Stmt
		for !p.at(lex.RBrace) && !p.at(lex.EOF) {
			body = append(body, p.parseStmt())
		}
		p.expect(lex.RBrace)
		return body
	}
	return []ast.Stmt{p.parseStmt()}
}

func (p *Parser) parseType() ast.TypeNode {
	pos := p.pos()
	tn := ast.TypeNode{Pos: pos, Spec: p.cur.Kind}
	switch p.cur.Kind {
	case lex.KwI32, lex.KwF32, lex.KwString:
		p.advance()
	case lex.KwClass:
		p.advance()
		tn.ClassName = p.identName()
	default:
		p.errorf("expected type before %s", describeLexeme(p.cur))
		p.advance()
	}
	if p.at(lex.LBracket) {
		p.advance()
		p.expect(lex.RBracket)
		tn.Array = true
	}
	return tn
}

func (p *Parser) parseDecl() ast.Stmt {
	pos := p.pos()
	tn := p.parseType()
	name := p.identName()
	var init ast.Expr
	if p.at(lex.Assign) {
		p.advance()
		init = p.parseAssignExpr()
	}
	return &ast.Decl{Pos: pos, Type: tn, Name: name, Init: init}
}

func (p *Parser) parseFuncDef() ast.Stmt {
	pos := p.pos()
	p.advance() // 'fn'
	name := p.identLikeFuncName()

	p.expect(lex.LParen)
	var params []ast.ParamDecl
	for !p.at(lex.RParen) && !p.at(lex.EOF) {
		ppos := p.pos()
		tn := p.parseType()
		pname := p.identName()
		params = append(params, ast.ParamDecl{Pos: ppos, Type: tn, Name: pname})
		if p.at(lex.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lex.RParen)

	var ret ast.TypeNode
	if p.at(lex.Colon) {
		p.advance()
		ret = p.parseType()
	}

	var body []ast.Stmt
	if p.at(lex.LBrace) {
		body = p.parseBody()
		if body == nil {
			body = []ast.Stmt{} // an empty `{}` body is a definition, not a forward declaration
		}
	} else {
		p.expect(lex.Semi) // forward declaration
	}

	return &ast.FuncDef{Pos: pos, Name: name, Params: params, RetType: ret, Body: body, IsCtor: name == "+new"}
}

// identLikeFuncName accepts either a plain identifier or the
// constructor's wire-level spelling `+new` (the lexer produces it as a
// Plus operator followed by the `new` keyword; the parser special-cases
// that two-lexeme spelling here instead of teaching the lexer a one-off
// token).
func (p *Parser) identLikeFuncName() string {
	if p.at(lex.Plus) {
		p.advance()
		p.expect(lex.KwNew)
		return "+new"
	}
	return p.identName()
}

func (p *Parser) parseClassDef() ast.Stmt {
	pos := p.pos()
	p.advance() // 'class_def'
	name := p.identName()
	p.expect(lex.LBrace)
	var body []ast.Stmt
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		switch {
		case p.at(lex.KwFn):
			body = append(body, p.parseFuncDef())
		case isTypeStart(p.cur.Kind):
			s := p.parseDecl()
			p.expect(lex.Semi)
			body = append(body, s)
		default:
			p.errorf("expected field or method declaration before %s", describeLexeme(p.cur))
			p.advance()
		}
	}
	p.expect(lex.RBrace)
	p.expect(lex.Semi)
	return &ast.ClassDef{Pos: pos, Name: name, Body: body}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.pos()
	p.advance()
	p.expect(lex.LParen)
	cond := p.parseExpr()
	p.expect(lex.RParen)
	then := p.parseBody()
	var els []ast.Stmt
	if p.at(lex.KwElse) {
		p.advance()
		els = p.parseBody()
	}
	return &ast.If{Pos: pos, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.pos()
	p.advance()
	p.expect(lex.LParen)
	cond := p.parseExpr()
	p.expect(lex.RParen)
	body := p.parseBody()
	return &ast.While{Pos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.pos()
	p.advance()
	p.expect(lex.LParen)

	var init ast.Stmt
	if !p.at(lex.Semi) {
		if isTypeStart(p.cur.Kind) {
			init = p.parseDecl()
		} else {
			epos := p.pos()
			init = &ast.ExprStmt{Pos: epos, Expr: p.parseExpr()}
		}
	}
	p.expect(lex.Semi)

	var cond ast.Expr
	if !p.at(lex.Semi) {
		cond = p.parseExpr()
	}
	p.expect(lex.Semi)

	var inc ast.Expr
	if !p.at(lex.RParen) {
		inc = p.parseExpr()
	}
	p.expect(lex.RParen)

	body := p.parseBody()
	return &ast.For{Pos: pos, Init: init, Cond: cond, Inc: inc, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.pos()
	p.advance()
	var v ast.Expr
	if !p.at(lex.Semi) {
		v = p.parseExpr()
	}
	p.expect(lex.Semi)
	return &ast.Return{Pos: pos, Value: v}
}

func (p *Parser) parsePrint() ast.Stmt {
	pos := p.pos()
	p.advance()
	var args []ast.Expr
	if !p.at(lex.Semi) {
		args = append(args, p.parseAssignExpr())
		for p.at(lex.Comma) {
			p.advance()
			args = append(args, p.parseAssignExpr())
		}
	}
	p.expect(lex.Semi)
	return &ast.Print{Pos: pos, Args: args}
}
