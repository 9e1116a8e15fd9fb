// Package workspace confines every file tool to a single project root. All
// tool paths, absolute or relative, must resolve to a location inside the
// root; symlinks that point outside it are rejected.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Workspace struct {
	root string
}

// New creates a workspace rooted at the given directory. Tilde is expanded
// and the root must exist.
func New(root string) (*Workspace, error) {
	expanded, err := ExpandPath(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project root does not exist: %s", expanded)
		}
		return nil, fmt.Errorf("cannot access project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", expanded)
	}
	// Resolve the root itself so later symlink checks compare like with like.
	resolved, err := filepath.EvalSymlinks(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	return &Workspace{root: resolved}, nil
}

// ExpandPath expands tilde (~) to the home directory and converts to an
// absolute path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		if path == "~" {
			path = homeDir
		} else {
			path = filepath.Join(homeDir, path[2:])
		}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (w *Workspace) Root() string { return w.root }

// Resolve maps a tool-supplied path to an absolute path inside the root.
// Relative paths are joined onto the root. The target itself may not exist
// yet (write, mkdir), but its closest existing ancestor must resolve inside
// the root after following symlinks.
func (w *Workspace) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(w.root, p)
	}
	p = filepath.Clean(p)
	if !w.contains(p) {
		return "", fmt.Errorf("path escapes the project root: %s", path)
	}
	if err := w.checkSymlinks(p, path); err != nil {
		return "", err
	}
	return p, nil
}

func (w *Workspace) contains(abs string) bool {
	return abs == w.root || strings.HasPrefix(abs, w.root+string(filepath.Separator))
}

// checkSymlinks follows symlinks on the closest existing ancestor of abs and
// verifies the real location is still inside the root.
func (w *Workspace) checkSymlinks(abs, display string) error {
	probe := abs
	for {
		resolved, err := filepath.EvalSymlinks(probe)
		if err == nil {
			if resolved != w.root && !strings.HasPrefix(resolved, w.root+string(filepath.Separator)) {
				return fmt.Errorf("path escapes the project root via symlink: %s", display)
			}
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot resolve path: %w", err)
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return nil
		}
		probe = parent
	}
}

// Rel renders an absolute path relative to the root for display.
func (w *Workspace) Rel(abs string) string {
	rel, err := filepath.Rel(w.root, abs)
	if err != nil {
		return abs
	}
	return rel
}
