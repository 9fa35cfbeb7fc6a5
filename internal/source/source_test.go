package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cirno")
	require.NoError(t, os.WriteFile(path, []byte("print 1;"), 0o644))

	s := NewSet()
	buf, err := s.Load(path)
	require.NoError(t, err)
	require.Equal(t, "print 1;", string(buf))
}

func TestIncludeResolvesRelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lib"), 0o755))
	mainPath := filepath.Join(dir, "main.cirno")
	libPath := filepath.Join(dir, "lib", "util.cirno")
	require.NoError(t, os.WriteFile(mainPath, []byte(`#include "lib/util.cirno"`), 0o644))
	require.NoError(t, os.WriteFile(libPath, []byte("fn noop() {}"), 0o644))

	s := NewSet()
	resolved, buf, isNew, err := s.Include(mainPath, "lib/util.cirno")
	require.NoError(t, err)
	require.True(t, isNew)
	require.Equal(t, "fn noop() {}", string(buf))
	require.Equal(t, libPath, resolved)
}

func TestIncludeIsANoOpTheSecondTime(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.cirno")
	incPath := filepath.Join(dir, "util.cirno")
	require.NoError(t, os.WriteFile(mainPath, []byte(`#include "util.cirno"`), 0o644))
	require.NoError(t, os.WriteFile(incPath, []byte("fn noop() {}"), 0o644))

	s := NewSet()
	_, _, isNew, err := s.Include(mainPath, "util.cirno")
	require.NoError(t, err)
	require.True(t, isNew)

	_, _, isNew, err = s.Include(mainPath, "util.cirno")
	require.NoError(t, err)
	require.False(t, isNew)
}
