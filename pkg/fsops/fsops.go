// Package fsops implements the file tools exposed over MCP. Every operation
// resolves its paths through the workspace sandbox before touching the
// filesystem.
package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yolo-mcps/yolo-projectfiles/internal/models"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/logger"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/workspace"
)

type Ops struct {
	ws  *workspace.Workspace
	log *logrus.Entry
}

// nowFunc is swappable so timestamp behavior is testable.
var nowFunc = time.Now

func New(ws *workspace.Workspace) *Ops {
	return &Ops{
		ws:  ws,
		log: logger.WithName("fsops"),
	}
}

// Read returns file content, optionally windowed by line offset and limit.
// offset is 1-based; limit 0 means to the end.
func (o *Ops) Read(path string, offset, limit int) (string, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if offset <= 0 && limit <= 0 {
		return string(data), nil
	}
	lines := strings.Split(string(data), "\n")
	start := 0
	if offset > 0 {
		start = offset - 1
	}
	if start >= len(lines) {
		return "", nil
	}
	end := len(lines)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return strings.Join(lines[start:end], "\n"), nil
}

// Write stores content atomically via a temp file in the target directory.
// In append mode the existing content is extended instead.
func (o *Ops) Write(path, content string, appendMode bool) (*models.WriteResult, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(abs)
	created := os.IsNotExist(statErr)

	if appendMode {
		f, err := os.OpenFile(abs, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s for append: %w", path, err)
		}
		n, werr := f.WriteString(content)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return nil, fmt.Errorf("failed to append to %s: %w", path, werr)
		}
		return &models.WriteResult{Path: path, BytesWritten: n, Created: created}, nil
	}

	if err := atomicWrite(abs, []byte(content)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	o.log.WithFields(logrus.Fields{"path": path, "bytes": len(content)}).Debug("wrote file")
	return &models.WriteResult{Path: path, BytesWritten: len(content), Created: created}, nil
}

func atomicWrite(abs string, data []byte) error {
	dir := filepath.Dir(abs)
	tmp, err := os.CreateTemp(dir, ".write-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	_, werr := tmp.Write(data)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tmpName)
		return werr
	}
	// Keep the previous mode when replacing an existing file.
	if info, err := os.Stat(abs); err == nil {
		os.Chmod(tmpName, info.Mode().Perm())
	}
	if err := os.Rename(tmpName, abs); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Edit replaces occurrences of oldStr with newStr. Without replaceAll the
// match must be unique; expected, when positive, asserts the occurrence
// count before any change is made.
func (o *Ops) Edit(path, oldStr, newStr string, expected int, replaceAll bool) (*models.EditResult, error) {
	if oldStr == "" {
		return nil, fmt.Errorf("search string cannot be empty")
	}
	if oldStr == newStr {
		return nil, fmt.Errorf("search and replacement are identical")
	}
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(data)
	count := strings.Count(content, oldStr)
	if count == 0 {
		return nil, fmt.Errorf("search string not found in %s", path)
	}
	if expected > 0 && count != expected {
		return nil, fmt.Errorf("expected %d occurrence(s) in %s, found %d", expected, path, count)
	}
	if !replaceAll && count > 1 {
		return nil, fmt.Errorf("search string occurs %d times in %s; pass replace_all or a more specific string", count, path)
	}
	replaced := count
	if !replaceAll {
		content = strings.Replace(content, oldStr, newStr, 1)
		replaced = 1
	} else {
		content = strings.ReplaceAll(content, oldStr, newStr)
	}
	if err := atomicWrite(abs, []byte(content)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	o.log.WithFields(logrus.Fields{"path": path, "replacements": replaced}).Debug("edited file")
	return &models.EditResult{Path: path, Replacements: replaced}, nil
}

// Touch updates a file's timestamps, creating it when create is true.
func (o *Ops) Touch(path string, create bool) error {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		if !create {
			return fmt.Errorf("file does not exist: %s", path)
		}
		f, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		return f.Close()
	}
	now := nowFunc()
	if err := os.Chtimes(abs, now, now); err != nil {
		return fmt.Errorf("failed to touch %s: %w", path, err)
	}
	return nil
}
