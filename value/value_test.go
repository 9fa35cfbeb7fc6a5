package value

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/types"
)

func TestLoadAssignScalar(t *testing.T) {
	b := heapvm.NewBlock(8)
	Assign(b, 0, types.I32Type, Value{Type: types.I32Type, I32: 7})
	v := Load(b, 0, types.I32Type)
	assert.Equal(t, int32(7), v.I32)
	assert.True(t, v.IsLvalue())
	assert.Equal(t, Origin{Base: b, Offset: 0, Valid: true}, v.Origin)
}

func TestLoadAssignRef(t *testing.T) {
	b := heapvm.NewBlock(8)
	ref := heapvm.NewBlock(4)
	Assign(b, 0, types.StringType, Value{Type: types.StringType, Ref: ref})
	v := Load(b, 0, types.StringType)
	assert.Same(t, ref, v.Block())
}

func TestIsLvalueFalseForRvalue(t *testing.T) {
	v := Value{Type: types.I32Type, I32: 5}
	assert.False(t, v.IsLvalue())
	assert.Nil(t, v.Block())
}
