// Package types implements Cirno's type_t triple: a primitive spec, an
// array flag, and an optional class reference. Equality of two Types
// compares all three fields, as spec.md §3 requires.
package types

// Spec is the primitive tag of a Type.
type Spec int

const (
	None Spec = iota
	I32
	F32
	String
	Class
	Fn
)

func (s Spec) String() string {
	switch s {
	case None:
		return "none"
	case I32:
		return "i32"
	case F32:
		return "f32"
	case String:
		return "string"
	case Class:
		return "class"
	case Fn:
		return "fn"
	default:
		return "?"
	}
}

// ClassDef is the minimal view of a class scope that types.Type needs;
// it is satisfied by *scope.Scope without types importing scope (which
// itself imports types for field/var typing), avoiding an import cycle.
type ClassDef interface {
	ClassName() string
}

// Type is {primitive spec, array flag, class reference}. Two Types are
// Equal only if all three fields match.
type Type struct {
	Spec  Spec
	Array bool
	Class ClassDef
}

// Equal implements spec.md's three-field type equality.
func (t Type) Equal(o Type) bool {
	return t.Spec == o.Spec && t.Array == o.Array && t.Class == o.Class
}

// String renders a canonical type spelling, e.g. "i32", "class Foo[]".
func (t Type) String() string {
	var base string
	if t.Spec == Class && t.Class != nil {
		base = "class " + t.Class.ClassName()
	} else {
		base = t.Spec.String()
	}
	if t.Array {
		return base + "[]"
	}
	return base
}

// refWidth is the machine-word width used for every heap-reference slot
// (string, array, class, fn): one pointer-sized slot regardless of the
// referenced kind.
const refWidth = 8

// SizeOf returns the byte width a value of Type occupies in a stack or
// heap block, dispatching by type spec the same way Load/Assign do.
func SizeOf(t Type) int {
	if t.Array || t.Spec == String || t.Spec == Class || t.Spec == Fn {
		return refWidth
	}
	switch t.Spec {
	case I32, F32:
		return 4
	default:
		return 0
	}
}

// IsRef reports whether a value of this type is heap-block-reference
// shaped: arrays, strings and classes. Fn values are not included; a
// bound method's receiver is carried in value.Value.Recv and traced
// from there.
func IsRef(t Type) bool {
	return t.Array || t.Spec == String || t.Spec == Class
}

// NoneType is the empty type, used for void returns and uninitialized slots.
var NoneType = Type{Spec: None}

// I32Type, F32Type and StringType are the non-array, non-class scalar
// types; convenience constructors mirroring the keyword spellings.
var (
	I32Type    = Type{Spec: I32}
	F32Type    = Type{Spec: F32}
	StringType = Type{Spec: String}
	FnType     = Type{Spec: Fn}
)

// Array returns the array-of-t type.
func Array(t Type) Type {
	t.Array = true
	return t
}

// ClassType returns the (non-array) type referencing class c.
func ClassType(c ClassDef) Type {
	return Type{Spec: Class, Class: c}
}
