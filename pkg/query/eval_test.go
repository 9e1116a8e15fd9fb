package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/codec"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

func mustDecode(t *testing.T, src string) *query.Value {
	t.Helper()
	v, err := codec.DecodeJSON([]byte(src))
	require.NoError(t, err)
	return v
}

// run executes a query and renders each result as compact JSON.
func run(t *testing.T, doc, q string) []string {
	t.Helper()
	results, err := query.Execute(mustDecode(t, doc), q)
	require.NoError(t, err, "query %q", q)
	out := make([]string, 0, len(results))
	for _, v := range results {
		out = append(out, v.String())
	}
	return out
}

func runErr(t *testing.T, doc, q string) *query.QueryError {
	t.Helper()
	_, err := query.Execute(mustDecode(t, doc), q)
	require.Error(t, err, "query %q", q)
	qerr, ok := err.(*query.QueryError)
	require.True(t, ok, "error is not a QueryError: %v", err)
	return qerr
}

func TestExecute_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"identity", `{"a":1}`, ".", []string{`{"a":1}`}},
		{"field", `{"a":1}`, ".a", []string{"1"}},
		{"nested field", `{"a":{"b":{"c":3}}}`, ".a.b.c", []string{"3"}},
		{"absent field yields null", `{"a":1}`, ".missing", []string{"null"}},
		{"field on null yields null", `{"a":1}`, ".missing.deeper", []string{"null"}},
		{"array index", `[10,20,30]`, ".[1]", []string{"20"}},
		{"negative index", `[10,20,30]`, ".[-1]", []string{"30"}},
		{"out of range yields null", `[10,20,30]`, ".[9]", []string{"null"}},
		{"bracket string key", `{"a b":1}`, `.["a b"]`, []string{"1"}},
		{"keyword field name", `{"if":"ci"}`, ".if", []string{`"ci"`}},
		{"clause keyword needs brackets", `{"end":1}`, `.["end"]`, []string{"1"}},
		{"slice", `[1,2,3,4,5]`, ".[1:3]", []string{"[2,3]"}},
		{"slice open end", `[1,2,3,4,5]`, ".[3:]", []string{"[4,5]"}},
		{"slice negative", `[1,2,3,4,5]`, ".[-2:]", []string{"[4,5]"}},
		{"string slice", `"hello"`, ".[1:3]", []string{`"el"`}},
		{"iterate array", `[1,2]`, ".[]", []string{"1", "2"}},
		{"iterate object values", `{"a":1,"b":2}`, ".[]", []string{"1", "2"}},
		{"pipe", `{"a":{"b":2}}`, ".a | .b", []string{"2"}},
		{"pipe flat-maps", `[[1,2],[3]]`, ".[] | .[]", []string{"1", "2", "3"}},
		{"recursive descent", `{"a":{"b":1}}`, "..", []string{`{"a":{"b":1}}`, `{"b":1}`, "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.doc, tt.query))
		})
	}
}

func TestExecute_Operators(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"addition", `{"a":1,"b":2}`, ".a + .b", []string{"3"}},
		{"string concat", `{"a":"foo","b":"bar"}`, ".a + .b", []string{`"foobar"`}},
		{"array concat", `{"a":[1],"b":[2]}`, ".a + .b", []string{"[1,2]"}},
		{"subtraction", `{"a":5,"b":2}`, ".a - .b", []string{"3"}},
		{"array difference", `[1,2,2,3]`, ". - [2]", []string{"[1,2,3]"}},
		{"multiplication", `{"n":6}`, ".n * 7", []string{"42"}},
		{"division stays exact", `null`, "10 / 4", []string{"2.5"}},
		{"integer division", `null`, "10 / 2", []string{"5"}},
		{"modulo", `null`, "7 % 3", []string{"1"}},
		{"aggregate arithmetic", `[1,2,3,4]`, "add / length", []string{"2.5"}},
		{"comparison", `{"a":3}`, ".a > 2", []string{"true"}},
		{"equality deep", `{"a":[1,2]}`, ".a == [1,2]", []string{"true"}},
		{"and short-circuits", `{"a":false}`, ".a and .b.c", []string{"false"}},
		{"or", `{"a":null,"b":2}`, ".a or .b", []string{"true"}},
		{"not keyword", `true`, ". | not", []string{"false"}},
		{"zero is truthy", `0`, "if . then \"t\" else \"f\" end", []string{`"t"`}},
		{"empty string is truthy", `""`, "if . then \"t\" else \"f\" end", []string{`"t"`}},
		{"alternative on null", `{"a":null}`, `.a // "fallback"`, []string{`"fallback"`}},
		{"alternative keeps truthy", `{"a":1}`, `.a // "fallback"`, []string{"1"}},
		{"unary minus", `{"n":5}`, "-.n", []string{"-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.doc, tt.query))
		})
	}
}

func TestExecute_Construction(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"array collects all results", `[1,2,3]`, "[.[] | . * 2]", []string{"[2,4,6]"}},
		{"empty array literal", `null`, "[]", []string{"[]"}},
		{"object literal", `{"a":1}`, `{x: .a, y: 2}`, []string{`{"x":1,"y":2}`}},
		{"object shorthand", `{"name":"n","extra":0}`, "{name}", []string{`{"name":"n"}`}},
		{"computed key", `{"k":"dyn"}`, `{(.k): 1}`, []string{`{"dyn":1}`}},
		{"zero-arg builtin as value", `[1,2,3]`, "{count: length}", []string{`{"count":3}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.doc, tt.query))
		})
	}
}

func TestExecute_ConditionalsAndErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected []string
	}{
		{"if else", `5`, `if . > 3 then "big" else "small" end`, []string{`"big"`}},
		{"elif chain", `2`, `if . > 3 then "big" elif . > 1 then "mid" else "small" end`, []string{`"mid"`}},
		{"if without else passes through", `1`, `if . > 3 then "big" end`, []string{"1"}},
		{"try catch division", `null`, `try (1/0) catch "err"`, []string{`"err"`}},
		{"try without catch drops", `null`, "try (1/0)", []string{}},
		{"catch sees message", `null`, `try error("boom") catch .`, nil},
		// A chain through absent fields is not an error, so ? has nothing
		// to suppress and the null flows through.
		{"optional passes null through", `{}`, ".missing.field?", []string{"null"}},
		{"optional on type error", `5`, ".[0]?", []string{}},
		{"optional on field of scalar", `5`, ".name?", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.doc, tt.query)
			if tt.expected == nil {
				// catch binds the error message as input
				assert.Equal(t, []string{`"boom"`}, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExecute_RuntimeErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		query string
		kind  query.ErrorKind
	}{
		{"field on number", `5`, ".a", query.ErrType},
		{"iterate scalar", `5`, ".[]", query.ErrType},
		{"division by zero", `null`, "1 / 0", query.ErrDivisionByZero},
		{"add incompatible", `{"a":1,"b":"x"}`, ".a + .b", query.ErrType},
		{"compare incompatible", `{"a":1,"b":"x"}`, ".a < .b", query.ErrType},
		{"custom error", `null`, `error("nope")`, query.ErrCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qerr := runErr(t, tt.doc, tt.query)
			assert.Equal(t, tt.kind, qerr.Kind)
			assert.True(t, qerr.Catchable())
		})
	}
}

func TestExecute_Idempotent(t *testing.T) {
	doc := `{"items":[3,1,2]}`
	first := run(t, doc, ".items | sort | .[0]")
	second := run(t, doc, ".items | sort | .[0]")
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"1"}, first)
}

func TestExecute_InputNotMutated(t *testing.T) {
	v := mustDecode(t, `{"a":[1,2]}`)
	_, err := query.Execute(v, ".a | reverse")
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2]}`, v.String())
}
