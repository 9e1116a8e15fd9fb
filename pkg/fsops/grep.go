package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yolo-mcps/yolo-projectfiles/internal/models"
)

// GrepOptions configures a regex search over one file or a subtree.
type GrepOptions struct {
	Pattern         string
	Path            string // file or directory, default "."
	Include         string // name glob to include
	Exclude         string // name glob to exclude
	CaseInsensitive bool
	InvertMatch     bool
	ContextBefore   int
	ContextAfter    int
	MaxResults      int // 0 = unlimited
}

// Grep searches file contents line by line.
func (o *Ops) Grep(opts GrepOptions) (*models.GrepResult, error) {
	if opts.Pattern == "" {
		return nil, fmt.Errorf("pattern cannot be empty")
	}
	if opts.Path == "" {
		opts.Path = "."
	}
	expr := opts.Pattern
	if opts.CaseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	abs, err := o.ws.Resolve(opts.Path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", opts.Path, err)
	}

	result := &models.GrepResult{Matches: []models.GrepMatch{}}
	search := func(file string) error {
		result.FileCount++
		return o.grepFile(file, re, opts, result)
	}

	if !info.IsDir() {
		if err := search(abs); err != nil {
			return nil, err
		}
		return result, nil
	}

	err = filepath.WalkDir(abs, func(p string, d os.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() {
			return nil
		}
		if result.Truncated {
			return filepath.SkipAll
		}
		name := d.Name()
		if opts.Include != "" {
			if ok, _ := filepath.Match(opts.Include, name); !ok {
				return nil
			}
		}
		if opts.Exclude != "" {
			if ok, _ := filepath.Match(opts.Exclude, name); ok {
				return nil
			}
		}
		return search(p)
	})
	if err != nil {
		return nil, fmt.Errorf("grep failed under %s: %w", opts.Path, err)
	}
	return result, nil
}

func (o *Ops) grepFile(abs string, re *regexp.Regexp, opts GrepOptions, result *models.GrepResult) error {
	data, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	// Binary files are skipped rather than matched bytewise.
	if strings.ContainsRune(string(data[:min(len(data), 8000)]), '\x00') {
		return nil
	}
	lines := strings.Split(string(data), "\n")
	rel := o.ws.Rel(abs)
	for i, line := range lines {
		matched := re.MatchString(line)
		if matched == opts.InvertMatch {
			continue
		}
		if opts.MaxResults > 0 && len(result.Matches) >= opts.MaxResults {
			result.Truncated = true
			return nil
		}
		m := models.GrepMatch{
			File: rel,
			Line: i + 1,
			Text: line,
		}
		for b := i - opts.ContextBefore; b < i; b++ {
			if b >= 0 {
				m.Before = append(m.Before, lines[b])
			}
		}
		for a := i + 1; a <= i+opts.ContextAfter && a < len(lines); a++ {
			m.After = append(m.After, lines[a])
		}
		result.Matches = append(result.Matches, m)
	}
	return nil
}
