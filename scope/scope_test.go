package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vv4t/cirno/types"
)

func TestAddVarAdvancesSize(t *testing.T) {
	s := New(nil, types.NoneType, true)
	v1 := s.AddVar("a", types.I32Type)
	v2 := s.AddVar("b", types.StringType)
	assert.Equal(t, 0, v1.Offset)
	assert.Equal(t, 4, v2.Offset)
	assert.Equal(t, 12, s.Size)
}

func TestFindVarWalksParentChain(t *testing.T) {
	global := New(nil, types.NoneType, true)
	global.AddVar("g", types.I32Type)

	child := New(global, types.NoneType, false)
	owner, v := child.FindVar("g")
	require.NotNil(t, v)
	assert.Same(t, global, owner)
}

func TestLocalVarDoesNotWalkParent(t *testing.T) {
	global := New(nil, types.NoneType, true)
	global.AddVar("g", types.I32Type)
	child := New(global, types.NoneType, false)

	_, ok := child.LocalVar("g")
	assert.False(t, ok)
}

func TestFindFuncAndClass(t *testing.T) {
	global := New(nil, types.NoneType, true)
	global.AddFunc("greet", &Func{})
	classScope := New(global, types.NoneType, true)
	global.AddClass("Foo", classScope)

	child := New(global, types.NoneType, false)
	assert.NotNil(t, child.FindFunc("greet"))
	assert.Same(t, classScope, child.FindClass("Foo"))
	assert.Nil(t, child.FindFunc("missing"))
}

func TestVarsIteratesInDeclarationOrder(t *testing.T) {
	s := New(nil, types.NoneType, true)
	s.AddVar("first", types.I32Type)
	s.AddVar("second", types.F32Type)

	var order []string
	s.Vars(func(name string, v *Var) { order = append(order, name) })
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestResetLoopFlags(t *testing.T) {
	s := New(nil, types.NoneType, true)
	s.Breaking = true
	s.Continuing = true
	s.ResetLoopFlags()
	assert.False(t, s.Breaking)
	assert.False(t, s.Continuing)
}

func TestClassNameSatisfiesTypesClassDef(t *testing.T) {
	classScope := New(nil, types.NoneType, true)
	var def types.ClassDef = classScope
	classScope.Name = "Point"
	assert.Equal(t, "Point", def.ClassName())
}
