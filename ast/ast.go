// Package ast defines Cirno's syntax tree. Where the source threads
// statement and argument lists through an explicit `next` pointer (a
// necessity of its arena-allocated C node type), this tree uses plain Go
// slices: Go already garbage-collects the tree, and a slice is the
// idiomatic ordered sequence here. See DESIGN.md for this and the other
// "sum type via interface + type switch" translations this package
// makes, since Go has no native tagged union to mirror s_node_t's.
package ast

import "github.com/vv4t/cirno/lex"

// Pos is the source position every node carries for diagnostics.
type Pos struct {
	Path string
	Line int
}

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
	At() Pos
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	At() Pos
}

// TypeNode is the syntax for a type: a primitive keyword or a class
// identifier, optionally suffixed by `[]`.
type TypeNode struct {
	Pos
	Spec      lex.Kind // one of KwI32, KwF32, KwString, KwClass (class X)
	ClassName string   // set when Spec names a class
	Array     bool
}

// ParamDecl is one `T name` entry in a function's parameter list.
type ParamDecl struct {
	Pos
	Type TypeNode
	Name string
}

func (p Pos) At() Pos { return p }
