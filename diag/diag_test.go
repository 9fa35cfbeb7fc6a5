package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorfSetsFailed(t *testing.T) {
	var l List
	assert.False(t, l.Failed())
	l.Errorf("main.cirno", 3, "unexpected %s", "token")
	assert.True(t, l.Failed())
	require.Len(t, l.Items(), 1)
	assert.Equal(t, "main.cirno:3:error: unexpected token", l.Items()[0].String())
}

func TestWarnfDoesNotSetFailed(t *testing.T) {
	var l List
	l.Warnf("main.cirno", 1, "skipped byte")
	assert.False(t, l.Failed())
	assert.Equal(t, "main.cirno:1:warning: skipped byte", l.Items()[0].String())
}

func TestReset(t *testing.T) {
	var l List
	l.Errorf("a", 1, "boom")
	l.Reset()
	assert.False(t, l.Failed())
	assert.Empty(t, l.Items())
}
