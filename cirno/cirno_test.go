package cirno

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vv4t/cirno/ast"
	"github.com/vv4t/cirno/heapvm"
	"github.com/vv4t/cirno/lex"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cirno")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadRunRoundtrip(t *testing.T) {
	path := writeScript(t, "print 1 + 1;")
	var out bytes.Buffer
	rt := Init(&out)
	defer rt.Unload()

	tree, err := rt.Load(path)
	require.NoError(t, err)
	require.True(t, rt.Run(tree))
	require.False(t, rt.Failed())
	require.Equal(t, "2 \n", out.String())
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	rt := Init(&bytes.Buffer{})
	defer rt.Unload()
	_, err := rt.Load(filepath.Join(t.TempDir(), "missing.cirno"))
	require.Error(t, err)
}

func TestBindAndCallNativeFunction(t *testing.T) {
	var out bytes.Buffer
	rt := Init(&out)
	defer rt.Unload()

	path := writeScript(t, "")
	tree, err := rt.Load(path)
	require.NoError(t, err)
	require.True(t, rt.Run(tree))

	params := []ast.ParamDecl{{Type: ast.TypeNode{Spec: lex.KwI32}, Name: "x"}}
	rt.Bind("double", params, types.I32Type, func(args *scope.Scope, ret *value.Value) bool {
		x, ok := rt.ArgLoad(args, "x")
		if !ok {
			return false
		}
		*ret = I32(x.I32 * 2)
		return true
	})

	result, ok := rt.Call("double", I32(21))
	require.True(t, ok)
	require.Equal(t, int32(42), result.I32)
}

func TestCallScriptDefinedFunction(t *testing.T) {
	var out bytes.Buffer
	rt := Init(&out)
	defer rt.Unload()

	path := writeScript(t, "fn square(i32 n): i32 { return n * n; }")
	tree, err := rt.Load(path)
	require.NoError(t, err)
	require.True(t, rt.Run(tree))

	result, ok := rt.Call("square", I32(6))
	require.True(t, ok)
	require.Equal(t, int32(36), result.I32)
}

func TestStrConstructsAHeapBackedString(t *testing.T) {
	rt := Init(&bytes.Buffer{})
	defer rt.Unload()
	v := rt.Str("hello")
	require.Equal(t, types.StringType, v.Type)
	require.Equal(t, 1, rt.HeapLen())
}

func TestTrackAllocsReceivesEvents(t *testing.T) {
	rt := Init(&bytes.Buffer{})
	defer rt.Unload()

	var events []heapvm.AllocEvent
	rt.TrackAllocs(func(ev heapvm.AllocEvent) { events = append(events, ev) })

	_ = rt.Str("hi")
	require.Len(t, events, 1)
	require.Equal(t, 2, events[0].Size)
}

func TestDiagnosticsSurfaceParseErrors(t *testing.T) {
	path := writeScript(t, "i32 x = ;")
	rt := Init(&bytes.Buffer{})
	defer rt.Unload()

	_, err := rt.Load(path)
	require.NoError(t, err)
	require.True(t, rt.Failed())
	require.NotEmpty(t, rt.Diagnostics())
}
