package stdlib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vv4t/cirno/cirno"
)

func TestMathBindings(t *testing.T) {
	rt := cirno.Init(&bytes.Buffer{})
	defer rt.Unload()
	Math(rt)

	result, ok := rt.Call("sqrt", cirno.F32(9))
	require.True(t, ok)
	require.InDelta(t, 3.0, float64(result.F32), 1e-5)

	result, ok = rt.Call("abs", cirno.F32(-4))
	require.True(t, ok)
	require.InDelta(t, 4.0, float64(result.F32), 1e-5)

	result, ok = rt.Call("cos", cirno.F32(0))
	require.True(t, ok)
	require.InDelta(t, 1.0, float64(result.F32), 1e-5)
}

func TestIOGetchReadsOneRune(t *testing.T) {
	rt := cirno.Init(&bytes.Buffer{})
	defer rt.Unload()
	IO(rt, strings.NewReader("ab"))

	result, ok := rt.Call("getch")
	require.True(t, ok)
	require.Equal(t, "a", string(result.Block().Bytes))

	result, ok = rt.Call("getch")
	require.True(t, ok)
	require.Equal(t, "b", string(result.Block().Bytes))
}

func TestIOInputReadsALineWithoutNewline(t *testing.T) {
	rt := cirno.Init(&bytes.Buffer{})
	defer rt.Unload()
	IO(rt, strings.NewReader("hello world\r\n"))

	result, ok := rt.Call("input")
	require.True(t, ok)
	require.Equal(t, "hello world", string(result.Block().Bytes))
}

func TestIOGetchAtEOFReturnsEmptyString(t *testing.T) {
	rt := cirno.Init(&bytes.Buffer{})
	defer rt.Unload()
	IO(rt, strings.NewReader(""))

	result, ok := rt.Call("getch")
	require.True(t, ok)
	require.Equal(t, 0, result.Block().Size())
}

func TestAllocTrackerAccumulatesEvents(t *testing.T) {
	rt := cirno.Init(&bytes.Buffer{})
	defer rt.Unload()

	tracker := NewAllocTracker()
	tracker.Attach(rt)

	_ = rt.Str("abc")
	_ = rt.Str("de")

	tracker.Report()
	require.Equal(t, 5, tracker.total)
	require.Len(t, tracker.events, 2)
}
