// Package source loads Cirno source files and deduplicates #include
// directives against a per-compilation registry, exactly as the source's
// reader resolves include paths relative to the including file's
// directory and treats a second inclusion of the same path as a no-op.
package source

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Set tracks every file loaded for one compilation so that the same path,
// resolved to its absolute form, is never tokenized twice.
type Set struct {
	seen map[string][]byte
}

// NewSet returns an empty file registry.
func NewSet() *Set {
	return &Set{seen: make(map[string][]byte)}
}

// Load reads path (if not already loaded) and returns its bytes.
func (s *Set) Load(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %q", path)
	}
	if buf, ok := s.seen[abs]; ok {
		return buf, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	s.seen[abs] = buf
	return buf, nil
}

// Include resolves includePath relative to the directory of fromPath,
// returning the resolved path, its contents, and whether this is the
// first time that resolved path has been included. A false isNew with a
// nil error means "no-op: already included" — the duplicate-inclusion
// policy that, as a side effect, breaks cycles.
func (s *Set) Include(fromPath, includePath string) (resolved string, buf []byte, isNew bool, err error) {
	dir := filepath.Dir(fromPath)
	resolved = filepath.Join(dir, includePath)

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", nil, false, errors.Wrapf(err, "resolve %q", resolved)
	}
	if existing, ok := s.seen[abs]; ok {
		return resolved, existing, false, nil
	}

	buf, err = os.ReadFile(resolved)
	if err != nil {
		return "", nil, false, errors.Wrapf(err, "open %q", resolved)
	}
	s.seen[abs] = buf
	return resolved, buf, true, nil
}
