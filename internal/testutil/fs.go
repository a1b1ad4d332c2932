// Package testutil provides filesystem fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// CountingFs wraps an afero.Fs and records how often files are opened or
// stat'ed.
type CountingFs struct {
	afero.Fs
	Opens int
	Stats int
}

func NewCountingFs(fs afero.Fs) *CountingFs {
	return &CountingFs{Fs: fs}
}

func (c *CountingFs) Open(name string) (afero.File, error) {
	c.Opens++
	return c.Fs.Open(name)
}

func (c *CountingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	c.Opens++
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *CountingFs) Stat(name string) (os.FileInfo, error) {
	c.Stats++
	return c.Fs.Stat(name)
}

// Accesses is the total number of filesystem calls recorded.
func (c *CountingFs) Accesses() int {
	return c.Opens + c.Stats
}

// WriteFile creates path (and its parents) on fs with the given contents.
func WriteFile(t *testing.T, fs afero.Fs, path, contents string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
