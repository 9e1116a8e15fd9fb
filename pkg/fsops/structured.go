package fsops

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yolo-mcps/yolo-projectfiles/internal/models"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/codec"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

// DocKind selects the on-disk format of a structured document.
type DocKind string

const (
	DocJSON DocKind = "json"
	DocYAML DocKind = "yaml"
	DocTOML DocKind = "toml"
)

func decodeDoc(kind DocKind, data []byte) (*query.Value, error) {
	switch kind {
	case DocJSON:
		return codec.DecodeJSON(data)
	case DocYAML:
		return codec.DecodeYAML(data)
	case DocTOML:
		return codec.DecodeTOML(data)
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}

func encodeDoc(kind DocKind, v *query.Value) ([]byte, error) {
	switch kind {
	case DocJSON:
		s, err := codec.EncodeJSON(v, codec.FormatJSON)
		if err != nil {
			return nil, err
		}
		return []byte(s + "\n"), nil
	case DocYAML:
		return codec.EncodeYAML(v)
	case DocTOML:
		return codec.EncodeTOML(v)
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}

// QueryRead runs a read-mode query against a structured file and renders
// the result sequence. format accepts json, compact and raw for every kind,
// plus the kind's native encoding (yaml or toml) for multi-document output.
func (o *Ops) QueryRead(kind DocKind, path, queryStr, format string) (string, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := decodeDoc(kind, data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	results, err := query.Execute(doc, queryStr)
	if err != nil {
		return "", fmt.Errorf("query failed on %s: %w", path, err)
	}

	if format == "" {
		format = "json"
	}
	switch format {
	case "json", "compact", "raw":
		return codec.EncodeResults(results, codec.OutputFormat(format))
	case "yaml":
		if kind != DocYAML {
			return "", fmt.Errorf("yaml output is only available for YAML documents")
		}
		parts := make([]string, 0, len(results))
		for _, v := range results {
			out, err := codec.EncodeYAML(v)
			if err != nil {
				return "", err
			}
			parts = append(parts, strings.TrimRight(string(out), "\n"))
		}
		return strings.Join(parts, "\n---\n"), nil
	case "toml":
		if kind != DocTOML {
			return "", fmt.Errorf("toml output is only available for TOML documents")
		}
		if len(results) != 1 {
			return "", fmt.Errorf("toml output requires exactly one result, got %d", len(results))
		}
		out, err := codec.EncodeTOML(results[0])
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(out), "\n"), nil
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

// QueryWrite applies an assignment query to a structured file and rewrites
// it atomically, optionally keeping a backup of the original.
func (o *Ops) QueryWrite(kind DocKind, path, queryStr string, backup bool) (*models.QueryWriteResult, error) {
	abs, err := o.ws.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := decodeDoc(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := query.ExecuteWrite(doc, queryStr); err != nil {
		return nil, fmt.Errorf("write query failed on %s: %w", path, err)
	}
	encoded, err := encodeDoc(kind, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode %s: %w", path, err)
	}

	result := &models.QueryWriteResult{Path: path, Applied: queryStr}
	if backup {
		backupPath := abs + ".bak-" + uuid.NewString()[:8]
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write backup for %s: %w", path, err)
		}
		result.BackupPath = o.ws.Rel(backupPath)
	}
	if err := atomicWrite(abs, encoded); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	o.log.WithFields(logrus.Fields{"path": path, "kind": string(kind)}).Debug("applied write query")
	return result, nil
}
