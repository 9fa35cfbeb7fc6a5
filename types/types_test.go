package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeClass string

func (f fakeClass) ClassName() string { return string(f) }

func TestTypeEqual(t *testing.T) {
	foo := fakeClass("Foo")
	bar := fakeClass("Bar")

	tests := []struct {
		name     string
		a, b     Type
		expected bool
	}{
		{"same scalar", I32Type, I32Type, true},
		{"different scalar", I32Type, F32Type, false},
		{"scalar vs array of same spec", I32Type, Array(I32Type), false},
		{"same array", Array(StringType), Array(StringType), true},
		{"same class", ClassType(foo), ClassType(foo), true},
		{"different class", ClassType(foo), ClassType(bar), false},
		{"class vs array of class", ClassType(foo), Array(ClassType(foo)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 4, SizeOf(I32Type))
	assert.Equal(t, 4, SizeOf(F32Type))
	assert.Equal(t, 8, SizeOf(StringType))
	assert.Equal(t, 8, SizeOf(Array(I32Type)))
	assert.Equal(t, 8, SizeOf(ClassType(fakeClass("Foo"))))
	assert.Equal(t, 8, SizeOf(FnType))
	assert.Equal(t, 0, SizeOf(NoneType))
}

func TestIsRef(t *testing.T) {
	assert.False(t, IsRef(I32Type))
	assert.False(t, IsRef(F32Type))
	assert.True(t, IsRef(StringType))
	assert.True(t, IsRef(Array(I32Type)))
	assert.True(t, IsRef(ClassType(fakeClass("Foo"))))
	// Fn is deliberately excluded: a bound method's receiver is pinned
	// via value.Value.Recv, not via a block the type itself owns.
	assert.False(t, IsRef(FnType))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "i32", I32Type.String())
	assert.Equal(t, "i32[]", Array(I32Type).String())
	assert.Equal(t, "class Foo", ClassType(fakeClass("Foo")).String())
	assert.Equal(t, "class Foo[]", Array(ClassType(fakeClass("Foo"))).String())
}
