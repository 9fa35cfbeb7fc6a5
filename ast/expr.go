package ast

import "github.com/vv4t/cirno/lex"

// IntLit is an integer constant.
type IntLit struct {
	Pos
	Value int32
}

func (*IntLit) exprNode() {}

// FloatLit is a float constant.
type FloatLit struct {
	Pos
	Value float32
}

func (*FloatLit) exprNode() {}

// StringLit is a string literal.
type StringLit struct {
	Pos
	Value string
}

func (*StringLit) exprNode() {}

// Ident is an identifier reference, resolved at evaluation time to a
// variable or a function.
type Ident struct {
	Pos
	Name string
}

func (*Ident) exprNode() {}

// Unary is a prefix `-` or `!` expression.
type Unary struct {
	Pos
	Op  lex.Kind // Minus or Bang
	Rhs Expr
}

func (*Unary) exprNode() {}

// Binary covers arithmetic, comparison, logical, assignment and
// compound-assignment operators; Op is the lexeme kind that selects the
// operation (see eval's dispatch table).
type Binary struct {
	Pos
	Op  lex.Kind
	Lhs Expr
	Rhs Expr
}

func (*Binary) exprNode() {}

// Index is `base[idx]`.
type Index struct {
	Pos
	Base Expr
	Idx  Expr
}

func (*Index) exprNode() {}

// Direct is `base.name`: an array's `.length`, a class field, or a
// method reference.
type Direct struct {
	Pos
	Base Expr
	Name string
}

func (*Direct) exprNode() {}

// Call is `callee(args...)`.
type Call struct {
	Pos
	Callee Expr
	Args   []Expr
}

func (*Call) exprNode() {}

// New is the `new ClassName` half of `new ClassName(args)`; the
// immediately following Call applies the constructor.
type New struct {
	Pos
	ClassName string
}

func (*New) exprNode() {}

// ArrayInitList is `array_init<T>{e1, e2, ...}`.
type ArrayInitList struct {
	Pos
	ElemType TypeNode
	Elems    []Expr
}

func (*ArrayInitList) exprNode() {}

// ArrayInitSize is `array_init<T>(size)`.
type ArrayInitSize struct {
	Pos
	ElemType TypeNode
	Size     Expr
}

func (*ArrayInitSize) exprNode() {}

// PostOp is a postfix `++` or `--`.
type PostOp struct {
	Pos
	Op     lex.Kind // OpInc or OpDec
	Target Expr
}

func (*PostOp) exprNode() {}
