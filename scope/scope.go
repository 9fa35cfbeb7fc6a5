// Package scope implements Cirno's naming environment: a tree of Scopes
// linked by a search_parent chain for identifier lookup, each owning
// insertion-ordered variable, class and function tables and a running
// byte-offset counter for its locals.
//
// Class definitions are themselves Scopes (spec.md §3: "Class definitions
// are implemented as scopes whose variables are the fields and whose
// functions are the methods"), which is why Scope implements
// types.ClassDef.
package scope

import (
	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// Var is a declared variable: its Type and its byte Offset within the
// containing scope's storage block (the process stack for locals and
// parameters, or a class instance block for fields).
type Var struct {
	Type   types.Type
	Offset int
}

// NativeFunc is a host-registered callback. args is the freshly opened
// call scope holding the bound parameters (read with ArgLoad); ret
// receives the return value. A false return aborts the call as a
// runtime error.
type NativeFunc func(args *Scope, ret *value.Value) bool

// Func is a function or method record: its syntax (nil Body/Native for a
// forward declaration), its return type, its lexical parent (for free
// identifier lookup from inside the body) and, for methods, the class
// scope that encloses it.
type Func struct {
	Name       string
	Params     []ast.ParamDecl
	Body       []ast.Stmt
	ReturnType types.Type
	Native     NativeFunc
	Parent     *Scope
	Class      *Scope
	IsCtor     bool
}

// Callee implements value.Callable.
func (f *Func) Callee() interface{} { return f }

// Scope is one naming environment: a function body, a class body, a
// loop or if/while block, or the global top level.
type Scope struct {
	Name string // non-empty only for class scopes (types.ClassDef)

	Parent *Scope // search_parent: outward lookup chain
	Child  *Scope // transient link to an actively-running nested call, a GC root

	vars      map[string]*Var
	varOrder  []string
	classes   map[string]*Scope
	classOrd  []string
	funcs     map[string]*Func
	funcOrder []string

	// Block is true for the global scope, call scopes and class scopes,
	// and false for the child scopes the evaluator opens for if/else
	// bodies, loop iterations and a for header. The evaluator's
	// redefinition checks look only at the declaring scope's own names
	// and do not read Block, so any nested scope may reintroduce a name
	// declared in an enclosing one.
	Block bool

	ReturnType  types.Type
	ReturnValue value.Value
	Returned    bool

	Continuing bool
	Breaking   bool

	Size int
}

// New creates a scope nested under parent (nil for the global scope).
func New(parent *Scope, retType types.Type, block bool) *Scope {
	s := &Scope{
		Parent:     parent,
		ReturnType: retType,
		Block:      block,
		vars:       make(map[string]*Var),
		classes:    make(map[string]*Scope),
		funcs:      make(map[string]*Func),
	}
	if parent != nil {
		s.Size = parent.Size
	}
	return s
}

// ClassName implements types.ClassDef.
func (s *Scope) ClassName() string { return s.Name }

// AddVar declares name with the given type, advancing Size by its byte
// width, and returns the new Var. The caller must have already checked
// for redefinition with LocalVar.
func (s *Scope) AddVar(name string, t types.Type) *Var {
	v := &Var{Type: t, Offset: s.Size}
	s.Size += types.SizeOf(t)
	s.vars[name] = v
	s.varOrder = append(s.varOrder, name)
	return v
}

// AddClass registers a class scope under name.
func (s *Scope) AddClass(name string, class *Scope) {
	class.Name = name
	s.classes[name] = class
	s.classOrd = append(s.classOrd, name)
}

// AddFunc registers a function record under name.
func (s *Scope) AddFunc(name string, fn *Func) {
	fn.Name = name
	s.funcs[name] = fn
	s.funcOrder = append(s.funcOrder, name)
}

// LocalVar looks up name only within this scope (no parent walk); used
// for redefinition checks.
func (s *Scope) LocalVar(name string) (*Var, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// LocalFunc looks up name only within this scope.
func (s *Scope) LocalFunc(name string) (*Func, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

// LocalClass looks up name only within this scope.
func (s *Scope) LocalClass(name string) (*Scope, bool) {
	c, ok := s.classes[name]
	return c, ok
}

// FindVar walks the search_parent chain outward for the first variable
// named name.
func (s *Scope) FindVar(name string) (*Scope, *Var) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.vars[name]; ok {
			return cur, v
		}
	}
	return nil, nil
}

// FindFunc walks the search_parent chain outward for the first function
// named name.
func (s *Scope) FindFunc(name string) *Func {
	for cur := s; cur != nil; cur = cur.Parent {
		if f, ok := cur.funcs[name]; ok {
			return f
		}
	}
	return nil
}

// FindClass walks the search_parent chain outward for the first class
// named name.
func (s *Scope) FindClass(name string) *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if c, ok := cur.classes[name]; ok {
			return c
		}
	}
	return nil
}

// Vars calls fn for every variable declared directly in s, in
// declaration order (used by the garbage collector to walk a class
// scope's field table, and by the evaluator to enumerate locals).
func (s *Scope) Vars(fn func(name string, v *Var)) {
	for _, name := range s.varOrder {
		fn(name, s.vars[name])
	}
}

// ResetLoopFlags clears Breaking/Continuing. The evaluator's loops clear
// these flags inline and do not call it.
func (s *Scope) ResetLoopFlags() {
	s.Breaking = false
	s.Continuing = false
}
