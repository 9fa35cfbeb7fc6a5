package parse

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/lex"
)

// parseExpr is the entry point for a full expression (used wherever the
// grammar allows the lowest precedence level, i.e. assignment).
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

// assignOps is the set of assignment-family operators; present only to
// make the membership check in parseAssignExpr self-documenting.
var assignOps = map[lex.Kind]bool{
	lex.Assign:    true,
	lex.OpAddAssn: true,
	lex.OpSubAssn: true,
	lex.OpMulAssn: true,
	lex.OpDivAssn: true,
}

// parseAssignExpr implements precedence level 1 (assignment family),
// right-associative.
func (p *Parser) parseAssignExpr() ast.Expr {
	lhs := p.parseLogicalOr()
	if assignOps[p.cur.Kind] {
		op := p.cur.Kind
		pos := p.pos()
		p.advance()
		rhs := p.parseAssignExpr()
		return &ast.Binary{Pos: pos, Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseLogicalOr() ast.Expr {
	lhs := p.parseLogicalAnd()
	for p.at(lex.OpOr) {
		pos := p.pos()
		p.advance()
		rhs := p.parseLogicalAnd()
		lhs = &ast.Binary{Pos: pos, Op: lex.OpOr, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	lhs := p.parseEquality()
	for p.at(lex.OpAnd) {
		pos := p.pos()
		p.advance()
		rhs := p.parseEquality()
		lhs = &ast.Binary{Pos: pos, Op: lex.OpAnd, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseEquality() ast.Expr {
	lhs := p.parseRelational()
	for p.at(lex.OpEq) || p.at(lex.OpNe) {
		op := p.cur.Kind
		pos := p.pos()
		p.advance()
		rhs := p.parseRelational()
		lhs = &ast.Binary{Pos: pos, Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseRelational() ast.Expr {
	lhs := p.parseAdditive()
	for p.at(lex.Lt) || p.at(lex.Gt) || p.at(lex.OpLe) || p.at(lex.OpGe) {
		op := p.cur.Kind
		pos := p.pos()
		p.advance()
		rhs := p.parseAdditive()
		lhs = &ast.Binary{Pos: pos, Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseAdditive() ast.Expr {
	lhs := p.parseMultiplicative()
	for p.at(lex.Plus) || p.at(lex.Minus) {
		op := p.cur.Kind
		pos := p.pos()
		p.advance()
		rhs := p.parseMultiplicative()
		lhs = &ast.Binary{Pos: pos, Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseMultiplicative() ast.Expr {
	lhs := p.parseUnary()
	for p.at(lex.Star) || p.at(lex.Slash) {
		op := p.cur.Kind
		pos := p.pos()
		p.advance()
		rhs := p.parseUnary()
		lhs = &ast.Binary{Pos: pos, Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(lex.Minus) || p.at(lex.Bang) {
		op := p.cur.Kind
		pos := p.pos()
		p.advance()
		rhs := p.parseUnary()
		return &ast.Unary{Pos: pos, Op: op, Rhs: rhs}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch {
		case p.at(lex.LBracket):
			pos := p.pos()
			p.advance()
			idx := p.parseExpr()
			p.expect(lex.RBracket)
			e = &ast.Index{Pos: pos, Base: e, Idx: idx}
		case p.at(lex.Dot):
			pos := p.pos()
			p.advance()
			name := p.identName()
			e = &ast.Direct{Pos: pos, Base: e, Name: name}
		case p.at(lex.LParen):
			pos := p.pos()
			p.advance()
			var args []ast.Expr
			for !p.at(lex.RParen) && !p.at(lex.EOF) {
				args = append(args, p.parseAssignExpr())
				if p.at(lex.Comma) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(lex.RParen)
			e = &ast.Call{Pos: pos, Callee: e, Args: args}
		case p.at(lex.OpInc) || p.at(lex.OpDec):
			op := p.cur.Kind
			pos := p.pos()
			p.advance()
			e = &ast.PostOp{Pos: pos, Op: op, Target: e}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.cur.Kind {
	case lex.ConstInteger:
		v := p.advance().Ival
		return &ast.IntLit{Pos: pos, Value: v}
	case lex.ConstFloat:
		v := p.advance().Fval
		return &ast.FloatLit{Pos: pos, Value: v}
	case lex.ConstString:
		v := p.advance().Str
		return &ast.StringLit{Pos: pos, Value: v}
	case lex.Identifier:
		name := p.advance().Ident
		return &ast.Ident{Pos: pos, Name: name}
	case lex.KwNew:
		p.advance()
		name := p.identName()
		return &ast.New{Pos: pos, ClassName: name}
	case lex.KwArrayInit:
		return p.parseArrayInit()
	case lex.LParen:
		p.advance()
		e := p.parseExpr()
		p.expect(lex.RParen)
		return e
	default:
		p.errorf("expected expression before %s", describeLexeme(p.cur))
		p.advance()
		return &ast.IntLit{Pos: pos, Value: 0}
	}
}

func (p *Parser) parseArrayInit() ast.Expr {
	pos := p.pos()
	p.advance() // 'array_init'
	p.expect(lex.Lt)
	elemType := p.parseType()
	p.expect(lex.Gt)

	if p.at(lex.LBrace) {
		p.advance()
		var elems []ast.Expr
		for !p.at(lex.RBrace) && !p.at(lex.EOF) {
			elems = append(elems, p.parseAssignExpr())
			if p.at(lex.Comma) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lex.RBrace)
		return &ast.ArrayInitList{Pos: pos, ElemType: elemType, Elems: elems}
	}

	p.expect(lex.LParen)
	size := p.parseExpr()
	p.expect(lex.RParen)
	return &ast.ArrayInitSize{Pos: pos, ElemType: elemType, Size: size}
}
