package fsops

import (
	"bufio"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yolo-mcps/yolo-projectfiles/internal/models"
)

func entryType(info os.FileInfo) string {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return "symlink"
	case info.IsDir():
		return "directory"
	case info.Mode().IsRegular():
		return "file"
	}
	return "other"
}

// Stat reports metadata for one path.
func (o *Ops) Stat(path string) (*models.StatResult, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Lstat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.StatResult{Path: path, AbsolutePath: abs, Exists: false}, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	mod := info.ModTime()
	return &models.StatResult{
		Path:         path,
		AbsolutePath: abs,
		Exists:       true,
		Type:         entryType(info),
		Size:         info.Size(),
		Mode:         fmt.Sprintf("%04o", info.Mode().Perm()),
		IsFile:       info.Mode().IsRegular(),
		IsDir:        info.IsDir(),
		IsSymlink:    info.Mode()&os.ModeSymlink != 0,
		Modified:     mod.Format("2006-01-02 15:04:05"),
		ModifiedUnix: mod.Unix(),
	}, nil
}

// Exists reports whether a path exists and what it is.
func (o *Ops) Exists(path string) (bool, string, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return false, "", err
	}
	info, err := os.Lstat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("cannot access %s: %w", path, err)
	}
	return true, entryType(info), nil
}

// List returns directory entries, optionally recursive, optionally filtered
// by a name glob.
func (o *Ops) List(path string, recursive bool, pattern string) ([]models.ListEntry, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	var out []models.ListEntry
	appendEntry := func(p string, info os.FileInfo) {
		if pattern != "" {
			if ok, _ := filepath.Match(pattern, info.Name()); !ok {
				return
			}
		}
		out = append(out, models.ListEntry{
			Name:     info.Name(),
			Path:     o.ws.Rel(p),
			Type:     entryType(info),
			Size:     info.Size(),
			Modified: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}

	if !recursive {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", path, err)
		}
		for _, e := range entries {
			info, err := e.Info()
			if err != nil {
				continue
			}
			appendEntry(filepath.Join(abs, e.Name()), info)
		}
		return out, nil
	}

	err = filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == abs {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		appendEntry(p, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	return out, nil
}

// FindOptions filters the recursive search.
type FindOptions struct {
	Name       string // glob over the base name
	Type       string // file, directory, any
	MinSize    int64
	MaxSize    int64 // 0 = unbounded
	MaxResults int   // 0 = unlimited
}

// Find walks a subtree and returns entries matching the filters.
func (o *Ops) Find(path string, opts FindOptions) ([]models.FindResult, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	if opts.Type == "" {
		opts.Type = "any"
	}
	var out []models.FindResult
	err = filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == abs {
			return nil
		}
		if opts.MaxResults > 0 && len(out) >= opts.MaxResults {
			return filepath.SkipAll
		}
		switch opts.Type {
		case "file":
			if d.IsDir() {
				return nil
			}
		case "directory":
			if !d.IsDir() {
				return nil
			}
		}
		if opts.Name != "" {
			if ok, _ := filepath.Match(opts.Name, d.Name()); !ok {
				return nil
			}
		}
		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		if !d.IsDir() {
			if info.Size() < opts.MinSize {
				return nil
			}
			if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
				return nil
			}
		}
		out = append(out, models.FindResult{
			Path: o.ws.Rel(p),
			Type: entryType(info),
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find failed under %s: %w", path, err)
	}
	return out, nil
}

// Tree builds a nested directory tree down to maxDepth (0 = unlimited).
func (o *Ops) Tree(path string, maxDepth int) (*models.TreeNode, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return buildTree(abs, info, maxDepth, 0)
}

func buildTree(abs string, info os.FileInfo, maxDepth, depth int) (*models.TreeNode, error) {
	node := &models.TreeNode{
		Name: info.Name(),
		Type: entryType(info),
	}
	if !info.IsDir() {
		node.Size = info.Size()
		return node, nil
	}
	if maxDepth > 0 && depth >= maxDepth {
		return node, nil
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		childInfo, err := e.Info()
		if err != nil {
			continue
		}
		child, err := buildTree(filepath.Join(abs, e.Name()), childInfo, maxDepth, depth+1)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// Wc counts lines, words, bytes and runes of a file.
func (o *Ops) Wc(path string) (*models.WcResult, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	res := &models.WcResult{
		Path:  path,
		Bytes: len(data),
		Chars: utf8.RuneCount(data),
	}
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for sc.Scan() {
		res.Lines++
		res.Words += len(strings.Fields(sc.Text()))
	}
	return res, nil
}

// Hash digests a file with md5, sha1 or sha256.
func (o *Ops) Hash(path, algorithm string) (*models.HashResult, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	var h hash.Hash
	switch algorithm {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "", "sha256":
		algorithm = "sha256"
		h = sha256.New()
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q (md5, sha1, sha256)", algorithm)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	n, err := io.Copy(h, f)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return &models.HashResult{
		Path:      path,
		Algorithm: algorithm,
		Digest:    fmt.Sprintf("%x", h.Sum(nil)),
		Size:      n,
	}, nil
}
