// Package codec decodes JSON, YAML, and TOML documents into the engine's
// Value model and serializes results back out. Object key order is preserved
// wherever the underlying format allows it.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

// DecodeJSON parses a JSON document, keeping object keys in document order.
func DecodeJSON(data []byte) (*query.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	// Trailing garbage after the document is an error, not silence.
	if dec.More() {
		return nil, fmt.Errorf("parse JSON: unexpected trailing content")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*query.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*query.Value, error) {
	switch t := tok.(type) {
	case nil:
		return query.NewNull(), nil
	case bool:
		return query.NewBool(t), nil
	case string:
		return query.NewString(t), nil
	case json.Number:
		return numberValue(t)
	case json.Delim:
		switch t {
		case '{':
			obj := query.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := query.NewArray()
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func numberValue(n json.Number) (*query.Value, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return query.NewInt(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", n.String())
	}
	return query.NewFloat(f), nil
}

// OutputFormat selects how a result sequence is rendered.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"    // indented JSON
	FormatCompact OutputFormat = "compact" // single-line JSON
	FormatRaw     OutputFormat = "raw"     // strings unquoted, everything else compact
)

// EncodeResults renders a result sequence, one value per line for compact
// and raw output, blank-line separated for indented output.
func EncodeResults(results []*query.Value, format OutputFormat) (string, error) {
	parts := make([]string, 0, len(results))
	for _, v := range results {
		s, err := EncodeJSON(v, format)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n"), nil
}

// EncodeJSON renders one value in the given format.
func EncodeJSON(v *query.Value, format OutputFormat) (string, error) {
	switch format {
	case FormatCompact:
		return v.String(), nil
	case FormatRaw:
		if v.Kind() == query.KindString {
			return v.Str(), nil
		}
		return v.String(), nil
	case FormatJSON, "":
		var buf bytes.Buffer
		writeIndented(&buf, v, 0)
		return buf.String(), nil
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

func writeIndented(buf *bytes.Buffer, v *query.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v.Kind() {
	case query.KindArray:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, elem := range v.Elems() {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(indent + "  ")
			writeIndented(buf, elem, depth+1)
		}
		buf.WriteString("\n" + indent + "]")
	case query.KindObject:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		first := true
		v.Entries(func(k string, val *query.Value) {
			if !first {
				buf.WriteString(",\n")
			}
			first = false
			key, _ := json.Marshal(k)
			buf.WriteString(indent + "  " + string(key) + ": ")
			writeIndented(buf, val, depth+1)
		})
		buf.WriteString("\n" + indent + "}")
	default:
		buf.WriteString(v.String())
	}
}
