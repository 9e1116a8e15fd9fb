package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Copy duplicates a file or directory tree inside the workspace. Existing
// destinations are only replaced when overwrite is set.
func (o *Ops) Copy(src, dst string, overwrite bool) error {
	absSrc, err := o.ws.Resolve(src)
	if err != nil {
		return err
	}
	absDst, err := o.ws.Resolve(dst)
	if err != nil {
		return err
	}
	info, err := os.Stat(absSrc)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if _, err := os.Stat(absDst); err == nil && !overwrite {
		return fmt.Errorf("destination already exists: %s", dst)
	}
	if info.IsDir() {
		return copyDir(absSrc, absDst)
	}
	return copyFile(absSrc, absDst, info.Mode())
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	_, cerr := io.Copy(out, in)
	if err := out.Close(); cerr == nil {
		cerr = err
	}
	return cerr
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

// Move renames a file or directory, falling back to copy+delete if needed.
func (o *Ops) Move(src, dst string, overwrite bool) error {
	absSrc, err := o.ws.Resolve(src)
	if err != nil {
		return err
	}
	absDst, err := o.ws.Resolve(dst)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absSrc); err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if _, err := os.Stat(absDst); err == nil && !overwrite {
		return fmt.Errorf("destination already exists: %s", dst)
	}
	if err := os.MkdirAll(filepath.Dir(absDst), 0o755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", dst, err)
	}
	if err := os.Rename(absSrc, absDst); err == nil {
		return nil
	}
	if err := o.Copy(src, dst, overwrite); err != nil {
		return err
	}
	return os.RemoveAll(absSrc)
}

// Delete removes a file, or a directory tree when recursive is set.
func (o *Ops) Delete(path string, recursive bool) error {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return err
	}
	if abs == o.ws.Root() {
		return fmt.Errorf("refusing to delete the project root")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		if !recursive {
			return fmt.Errorf("%s is a directory; pass recursive to delete it", path)
		}
		return os.RemoveAll(abs)
	}
	return os.Remove(abs)
}

// Mkdir creates a directory. With parents set it behaves like mkdir -p.
func (o *Ops) Mkdir(path string, parents bool) error {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return err
	}
	if parents {
		return os.MkdirAll(abs, 0o755)
	}
	if err := os.Mkdir(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}

// Chmod applies an octal mode string such as "644" or "0755".
func (o *Ops) Chmod(path, mode string, recursive bool) error {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return err
	}
	parsed, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid mode %q: must be octal like 644", mode)
	}
	fm := os.FileMode(parsed)
	if !recursive {
		if err := os.Chmod(abs, fm); err != nil {
			return fmt.Errorf("failed to chmod %s: %w", path, err)
		}
		return nil
	}
	return filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return os.Chmod(p, fm)
	})
}
