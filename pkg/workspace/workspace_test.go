package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := New(t.TempDir())
	require.NoError(t, err)
	return ws
}

func TestNew(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		ws, err := New(t.TempDir())
		require.NoError(t, err)
		assert.DirExists(t, ws.Root())
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
		_, err := New(f)
		assert.Error(t, err)
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := New("")
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	ws := newTestWorkspace(t)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative path", "sub/file.txt", false},
		{"dot relative", "./file.txt", false},
		{"root itself", ".", false},
		{"nonexistent target allowed", "not/created/yet.txt", false},
		{"parent escape", "../outside.txt", true},
		{"sneaky escape", "sub/../../outside.txt", true},
		{"empty path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := ws.Resolve(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, abs == ws.Root() || filepath.Dir(abs) != "", "resolved path %s", abs)
		})
	}
}

func TestResolve_AbsoluteInsideRoot(t *testing.T) {
	ws := newTestWorkspace(t)
	abs, err := ws.Resolve(filepath.Join(ws.Root(), "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.Root(), "file.txt"), abs)
}

func TestResolve_AbsoluteOutsideRoot(t *testing.T) {
	ws := newTestWorkspace(t)
	_, err := ws.Resolve("/etc/passwd")
	assert.Error(t, err)
}

func TestResolve_SymlinkEscape(t *testing.T) {
	ws := newTestWorkspace(t)
	outside := t.TempDir()
	link := filepath.Join(ws.Root(), "link")
	require.NoError(t, os.Symlink(outside, link))

	_, err := ws.Resolve("link/file.txt")
	assert.Error(t, err)
}

func TestRel(t *testing.T) {
	ws := newTestWorkspace(t)
	assert.Equal(t, "sub/file.txt", ws.Rel(filepath.Join(ws.Root(), "sub", "file.txt")))
}
