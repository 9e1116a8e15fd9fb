package codec

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

// DecodeYAML parses a YAML document, keeping mapping keys in document order.
func DecodeYAML(data []byte) (*query.Value, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return fromYAML(raw)
}

func fromYAML(raw any) (*query.Value, error) {
	switch t := raw.(type) {
	case nil:
		return query.NewNull(), nil
	case bool:
		return query.NewBool(t), nil
	case string:
		return query.NewString(t), nil
	case int:
		return query.NewInt(int64(t)), nil
	case int64:
		return query.NewInt(t), nil
	case uint64:
		return query.NewInt(int64(t)), nil
	case float64:
		return query.NewFloat(t), nil
	case time.Time:
		// Timestamps have no Value representation of their own; they come
		// through as RFC 3339 strings.
		return query.NewString(t.Format(time.RFC3339)), nil
	case []any:
		arr := query.NewArray()
		for _, elem := range t {
			v, err := fromYAML(elem)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case yaml.MapSlice:
		obj := query.NewObject()
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			v, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported YAML value of type %T", raw)
}

// EncodeYAML serializes a value as a YAML document.
func EncodeYAML(v *query.Value) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(toYAML(v), yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return out, nil
}

func toYAML(v *query.Value) any {
	switch v.Kind() {
	case query.KindNull:
		return nil
	case query.KindBool:
		return v.Bool()
	case query.KindNumber:
		if v.IsInt() {
			return v.Int()
		}
		return v.Float()
	case query.KindString:
		return v.Str()
	case query.KindArray:
		out := make([]any, 0, v.Len())
		for _, elem := range v.Elems() {
			out = append(out, toYAML(elem))
		}
		return out
	case query.KindObject:
		out := make(yaml.MapSlice, 0, v.Len())
		v.Entries(func(k string, val *query.Value) {
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(val)})
		})
		return out
	}
	return nil
}
