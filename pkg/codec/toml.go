package codec

import (
	"fmt"
	"sort"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

// DecodeTOML parses a TOML document. TOML has no ordered-map decoding, so
// key order is lossy: objects come back in the library's map order and are
// re-serialized with sorted keys.
func DecodeTOML(data []byte) (*query.Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	return fromTOML(raw)
}

func fromTOML(raw any) (*query.Value, error) {
	switch t := raw.(type) {
	case nil:
		return query.NewNull(), nil
	case bool:
		return query.NewBool(t), nil
	case string:
		return query.NewString(t), nil
	case int64:
		return query.NewInt(t), nil
	case float64:
		return query.NewFloat(t), nil
	case time.Time:
		return query.NewString(t.Format(time.RFC3339)), nil
	case toml.LocalDate:
		return query.NewString(t.String()), nil
	case toml.LocalTime:
		return query.NewString(t.String()), nil
	case toml.LocalDateTime:
		return query.NewString(t.String()), nil
	case []any:
		arr := query.NewArray()
		for _, elem := range t {
			v, err := fromTOML(elem)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case map[string]any:
		obj := query.NewObject()
		for _, key := range sortedKeys(t) {
			v, err := fromTOML(t[key])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported TOML value of type %T", raw)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EncodeTOML serializes a value as a TOML document. The root must be an
// object; nulls have no TOML representation and are dropped with their keys.
func EncodeTOML(v *query.Value) ([]byte, error) {
	if v.Kind() != query.KindObject {
		return nil, fmt.Errorf("encode TOML: root must be an object, got %s", v.TypeName())
	}
	raw, err := toTOML(v)
	if err != nil {
		return nil, err
	}
	out, merr := toml.Marshal(raw)
	if merr != nil {
		return nil, fmt.Errorf("encode TOML: %w", merr)
	}
	return out, nil
}

func toTOML(v *query.Value) (any, error) {
	switch v.Kind() {
	case query.KindBool:
		return v.Bool(), nil
	case query.KindNumber:
		if v.IsInt() {
			return v.Int(), nil
		}
		return v.Float(), nil
	case query.KindString:
		return v.Str(), nil
	case query.KindArray:
		out := make([]any, 0, v.Len())
		for _, elem := range v.Elems() {
			if elem.Kind() == query.KindNull {
				continue
			}
			e, err := toTOML(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case query.KindObject:
		out := make(map[string]any, v.Len())
		var convErr error
		v.Entries(func(k string, val *query.Value) {
			if convErr != nil || val.Kind() == query.KindNull {
				return
			}
			e, err := toTOML(val)
			if err != nil {
				convErr = err
				return
			}
			out[k] = e
		})
		if convErr != nil {
			return nil, convErr
		}
		return out, nil
	}
	return nil, fmt.Errorf("encode TOML: cannot represent %s", v.TypeName())
}
