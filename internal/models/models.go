// Package models holds the result structures the file tools serialize as
// JSON tool output.
package models

// StatResult is the metadata report for a single path.
type StatResult struct {
	Path         string `json:"path"`
	AbsolutePath string `json:"absolute_path"`
	Exists       bool   `json:"exists"`
	Type         string `json:"type"` // file, directory, symlink, other
	Size         int64  `json:"size"`
	Mode         string `json:"mode"`
	IsFile       bool   `json:"is_file"`
	IsDir        bool   `json:"is_dir"`
	IsSymlink    bool   `json:"is_symlink"`
	Modified     string `json:"modified,omitempty"`
	ModifiedUnix int64  `json:"modified_timestamp,omitempty"`
}

// ListEntry is one row of a directory listing.
type ListEntry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Modified string `json:"modified,omitempty"`
}

// GrepMatch is one matching line, optionally with surrounding context.
type GrepMatch struct {
	File   string   `json:"file"`
	Line   int      `json:"line,omitempty"`
	Text   string   `json:"text"`
	Before []string `json:"before,omitempty"`
	After  []string `json:"after,omitempty"`
}

// GrepResult aggregates matches across the searched files.
type GrepResult struct {
	Matches   []GrepMatch `json:"matches"`
	FileCount int         `json:"files_searched"`
	Truncated bool        `json:"truncated"`
}

// FindResult is one path matched by the find tool.
type FindResult struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// TreeNode is a recursive directory tree entry.
type TreeNode struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Size     int64       `json:"size,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// WcResult mirrors wc(1) output for one file.
type WcResult struct {
	Path  string `json:"path"`
	Lines int    `json:"lines"`
	Words int    `json:"words"`
	Bytes int    `json:"bytes"`
	Chars int    `json:"chars"`
}

// HashResult carries a file digest.
type HashResult struct {
	Path      string `json:"path"`
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size"`
}

// EditResult reports what an edit operation changed.
type EditResult struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
}

// WriteResult reports a completed write, including any backup taken.
type WriteResult struct {
	Path         string `json:"path"`
	BytesWritten int    `json:"bytes_written"`
	Created      bool   `json:"created"`
	BackupPath   string `json:"backup_path,omitempty"`
}

// QueryWriteResult reports an in-place structured-document update.
type QueryWriteResult struct {
	Path       string `json:"path"`
	Applied    string `json:"applied"`
	BackupPath string `json:"backup_path,omitempty"`
}
