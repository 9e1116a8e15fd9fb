package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

func TestBuiltins_Arrays(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"map", `[1,2,3]`, "map(. * 2)", []string{"[2,4,6]"}},
		{"map flattens multiple results", `[[1,2],[3]]`, "map(.[])", []string{"[1,2,3]"}},
		{"select keeps", `5`, "select(. > 3)", []string{"5"}},
		{"select drops without null", `[1,2,3]`, "map(select(. > 1))", []string{"[2,3]"}},
		{"sort", `[3,1,2]`, "sort", []string{"[1,2,3]"}},
		{"sort mixed types", `["b",1,null,true]`, "sort", []string{`[null,true,1,"b"]`}},
		{"sort_by", `[{"n":2},{"n":1}]`, "sort_by(.n)", []string{`[{"n":1},{"n":2}]`}},
		{"group_by first-seen order", `[{"a":2},{"a":1},{"a":2}]`, "group_by(.a)", []string{`[[{"a":2},{"a":2}],[{"a":1}]]`}},
		{"group_by with length", `[{"a":1},{"a":1},{"a":2}]`, "group_by(.a) | map({val: .[0].a, count: length})", []string{`[{"val":1,"count":2},{"val":2,"count":1}]`}},
		{"unique keeps first occurrence", `[3,1,3,2,1]`, "unique", []string{"[3,1,2]"}},
		{"reverse", `[1,2,3]`, "reverse", []string{"[3,2,1]"}},
		{"add numbers", `[1,2,3]`, "add", []string{"6"}},
		{"add strings", `["a","b"]`, "add", []string{`"ab"`}},
		{"add arrays", `[[1],[2]]`, "add", []string{"[1,2]"}},
		{"add empty", `[]`, "add", []string{"null"}},
		{"min", `[3,1,2]`, "min", []string{"1"}},
		{"max", `[3,1,2]`, "max", []string{"3"}},
		{"min empty", `[]`, "min", []string{"null"}},
		{"flatten one level", `[[1,[2]],[3]]`, "flatten", []string{"[1,[2],3]"}},
		{"flatten with depth", `[[1,[2]],[3]]`, "flatten(2)", []string{"[1,2,3]"}},
		{"indices scalar", `[1,2,1]`, "indices(1)", []string{"[0,2]"}},
		{"indices substring", `"abcabc"`, `indices("bc")`, []string{"[1,4]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.doc, tt.query))
		})
	}
}

func TestBuiltins_Objects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"keys sorted", `{"b":1,"a":2}`, "keys", []string{`["a","b"]`}},
		{"keys_unsorted", `{"b":1,"a":2}`, "keys_unsorted", []string{`["b","a"]`}},
		{"array keys are indices", `[5,6]`, "keys", []string{"[0,1]"}},
		{"values", `{"a":1,"b":2}`, "values", []string{"[1,2]"}},
		{"has true", `{"a":1}`, `has("a")`, []string{"true"}},
		{"has false", `{"a":1}`, `has("b")`, []string{"false"}},
		{"has index", `[1,2]`, "has(5)", []string{"false"}},
		{"del field", `{"a":1,"b":2}`, "del(.a)", []string{`{"b":2}`}},
		{"del index", `[1,2,3]`, "del(.[1])", []string{"[1,3]"}},
		{"del nested", `{"a":{"b":1,"c":2}}`, "del(.a.b)", []string{`{"a":{"c":2}}`}},
		{"to_entries", `{"a":1}`, "to_entries", []string{`[{"key":"a","value":1}]`}},
		{"from_entries", `[{"key":"a","value":1}]`, "from_entries", []string{`{"a":1}`}},
		{"from_entries alternate names", `[{"name":"a","v":1}]`, "from_entries", []string{`{"a":1}`}},
		{"with_entries", `{"a":1,"b":2}`, "with_entries({key: .key, value: (.value * 10)})", []string{`{"a":10,"b":20}`}},
		{"paths", `{"a":{"b":1}}`, "paths", []string{`[["a"],["a","b"]]`}},
		{"leaf_paths", `{"a":{"b":1},"c":2}`, "leaf_paths", []string{`[["a","b"],["c"]]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.doc, tt.query))
		})
	}
}

func TestBuiltins_Strings(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"split", `"a,b,c"`, `split(",")`, []string{`["a","b","c"]`}},
		{"join", `["a","b"]`, `join("-")`, []string{`"a-b"`}},
		{"join numbers and nulls", `[1,null,"x"]`, `join(",")`, []string{`"1,,x"`}},
		{"trim", `"  hi  "`, "trim", []string{`"hi"`}},
		{"ltrimstr", `"prefix.rest"`, `ltrimstr("prefix.")`, []string{`"rest"`}},
		{"ltrimstr no match", `"rest"`, `ltrimstr("prefix.")`, []string{`"rest"`}},
		{"rtrimstr", `"file.txt"`, `rtrimstr(".txt")`, []string{`"file"`}},
		{"contains string", `"hello"`, `contains("ell")`, []string{"true"}},
		{"contains array element", `[1,2,3]`, "contains(2)", []string{"true"}},
		{"startswith", `"hello"`, `startswith("he")`, []string{"true"}},
		{"endswith", `"hello"`, `endswith("lo")`, []string{"true"}},
		{"test", `"abc123"`, `test("[0-9]+")`, []string{"true"}},
		{"test case flag", `"ABC"`, `test("abc", "i")`, []string{"true"}},
		{"ascii_upcase", `"go"`, "ascii_upcase", []string{`"GO"`}},
		{"ascii_downcase", `"GO"`, "ascii_downcase", []string{`"go"`}},
		{"tostring on number", `42`, "tostring", []string{`"42"`}},
		{"tostring on object", `{"a":1}`, "tostring", []string{`"{\"a\":1}"`}},
		{"tonumber", `"3.5"`, "tonumber", []string{"3.5"}},
		{"tonumber integer", `"42"`, "tonumber", []string{"42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.doc, tt.query))
		})
	}
}

func TestBuiltins_Match(t *testing.T) {
	got := run(t, `"a1b2"`, `match("([a-z])([0-9])")`)
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], `"offset":0`)
	assert.Contains(t, got[0], `"string":"a1"`)
	assert.Contains(t, got[0], `"captures"`)
}

func TestBuiltins_MathAndControl(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"floor", `3.7`, "floor", []string{"3"}},
		{"ceil", `3.2`, "ceil", []string{"4"}},
		{"round", `3.5`, "round", []string{"4"}},
		{"abs", `-2.5`, "abs", []string{"2.5"}},
		{"length array", `[1,2,3]`, "length", []string{"3"}},
		{"length object", `{"a":1}`, "length", []string{"1"}},
		{"length string counts chars", `"héllo"`, "length", []string{"5"}},
		{"length null", `null`, "length", []string{"0"}},
		{"type", `[1]`, "type", []string{`"array"`}},
		{"empty", `1`, "empty", []string{}},
		{"empty in pipe", `[1,2]`, ".[] | empty", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.doc, tt.query))
		})
	}
}

func TestBuiltins_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		query string
		kind  query.ErrorKind
	}{
		{"length of number", `5`, "length", query.ErrType},
		{"map on object", `{"a":1}`, "map(.)", query.ErrType},
		{"sort on string", `"abc"`, "sort", query.ErrType},
		{"tonumber on text", `"abc"`, "tonumber", query.ErrType},
		{"bad regex", `"x"`, `test("(unclosed")`, query.ErrRegex},
		{"join on object elements", `[{"a":1}]`, `join(",")`, query.ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qerr := runErr(t, tt.doc, tt.query)
			assert.Equal(t, tt.kind, qerr.Kind)
		})
	}
}

func TestBuiltins_ErrorsAreCatchable(t *testing.T) {
	got := run(t, `["1","x","2"]`, "map(try tonumber catch null)")
	assert.Equal(t, []string{"[1,null,2]"}, got)
}
