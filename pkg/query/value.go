// Package query implements the jq-style expression engine shared by the
// jsonq, yamlq and tomlq tools. The engine is format agnostic: callers decode
// their document into a Value tree, run Execute or ExecuteWrite against it,
// and re-encode the result themselves.
package query

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is the semi-structured data type the engine operates on. Objects
// preserve insertion order; duplicate keys follow last-write-wins map
// semantics. Numbers are float64 internally but remember whether they were
// produced from an integer so encoders can keep the distinction.
type Value struct {
	kind  Kind
	b     bool
	num   float64
	isInt bool
	str   string
	arr   []*Value
	obj   *orderedmap.OrderedMap[string, *Value]
}

func NewNull() *Value { return &Value{kind: KindNull} }

func NewBool(b bool) *Value { return &Value{kind: KindBool, b: b} }

func NewInt(n int64) *Value {
	return &Value{kind: KindNumber, num: float64(n), isInt: true}
}

func NewFloat(f float64) *Value {
	return &Value{kind: KindNumber, num: f}
}

func NewString(s string) *Value { return &Value{kind: KindString, str: s} }

func NewArray(elems ...*Value) *Value {
	return &Value{kind: KindArray, arr: elems}
}

func NewObject() *Value {
	return &Value{kind: KindObject, obj: orderedmap.New[string, *Value]()}
}

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool { return v.kind == KindNull }

// IsTruthy reports query-level truthiness: everything except false and null.
func (v *Value) IsTruthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

func (v *Value) Bool() bool { return v.b }

func (v *Value) Float() float64 { return v.num }

func (v *Value) Int() int64 { return int64(v.num) }

// IsInt reports whether a number value carries the integer tag.
func (v *Value) IsInt() bool { return v.kind == KindNumber && v.isInt }

func (v *Value) Str() string { return v.str }

// Elems returns the backing slice of an array value.
func (v *Value) Elems() []*Value { return v.arr }

func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	case KindString:
		return len([]rune(v.str))
	}
	return 0
}

func (v *Value) Append(elem *Value) {
	v.arr = append(v.arr, elem)
}

func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj.Get(key)
}

func (v *Value) Set(key string, val *Value) {
	v.obj.Set(key, val)
}

func (v *Value) Delete(key string) {
	v.obj.Delete(key)
}

// Keys returns object keys in insertion order.
func (v *Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Entries calls fn for every object entry in insertion order.
func (v *Value) Entries(fn func(key string, val *Value)) {
	if v.kind != KindObject {
		return
	}
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

func (v *Value) TypeName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Clone returns a deep copy. Write mode mutates trees in place, so anything
// that crosses from one value tree into another must be cloned first.
func (v *Value) Clone() *Value {
	switch v.kind {
	case KindArray:
		elems := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			elems[i] = e.Clone()
		}
		return &Value{kind: KindArray, arr: elems}
	case KindObject:
		out := NewObject()
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value.Clone())
		}
		return out
	default:
		c := *v
		return &c
	}
}

// Equal reports deep structural equality. Numbers compare by numeric value,
// so 1 and 1.0 are equal.
func (v *Value) Equal(o *Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != o.obj.Len() {
			return false
		}
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			other, ok := o.obj.Get(pair.Key)
			if !ok || !pair.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// kindOrder ranks value kinds for the total sort order:
// null < false < true < numbers < strings < arrays < objects.
func kindOrder(v *Value) int {
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		if v.b {
			return 2
		}
		return 1
	case KindNumber:
		return 3
	case KindString:
		return 4
	case KindArray:
		return 5
	case KindObject:
		return 6
	}
	return 7
}

// Compare imposes a total order over all values, used by sort, sort_by,
// group_by, unique, min and max.
func (v *Value) Compare(o *Value) int {
	vo, oo := kindOrder(v), kindOrder(o)
	if vo != oo {
		if vo < oo {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindNumber:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	case KindString:
		return strings.Compare(v.str, o.str)
	case KindArray:
		for i := 0; i < len(v.arr) && i < len(o.arr); i++ {
			if c := v.arr[i].Compare(o.arr[i]); c != 0 {
				return c
			}
		}
		return len(v.arr) - len(o.arr)
	case KindObject:
		vk, ok := v.Keys(), o.Keys()
		for i := 0; i < len(vk) && i < len(ok); i++ {
			if c := strings.Compare(vk[i], ok[i]); c != 0 {
				return c
			}
		}
		if d := len(vk) - len(ok); d != 0 {
			return d
		}
		for _, k := range vk {
			a, _ := v.Get(k)
			b, _ := o.Get(k)
			if c := a.Compare(b); c != 0 {
				return c
			}
		}
	}
	return 0
}

// String renders the value as compact JSON-style text. Used by tostring,
// join and error messages; format-specific output goes through pkg/codec.
func (v *Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v *Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(formatNumber(v))
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		first := true
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(strconv.Quote(pair.Key))
			sb.WriteByte(':')
			pair.Value.writeTo(sb)
		}
		sb.WriteByte('}')
	}
}

func formatNumber(v *Value) string {
	if v.isInt {
		return strconv.FormatInt(int64(v.num), 10)
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}
