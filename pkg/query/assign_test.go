package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

func write(t *testing.T, doc, q string) string {
	t.Helper()
	v := mustDecode(t, doc)
	require.NoError(t, query.ExecuteWrite(v, q), "write %q", q)
	return v.String()
}

func writeErr(t *testing.T, doc, q string) *query.QueryError {
	t.Helper()
	v := mustDecode(t, doc)
	err := query.ExecuteWrite(v, q)
	require.Error(t, err, "write %q", q)
	qerr, ok := err.(*query.QueryError)
	require.True(t, ok, "error is not a QueryError: %v", err)
	return qerr
}

func TestExecuteWrite_Set(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected string
	}{
		{"replace field", `{"a":1}`, ".a = 2", `{"a":2}`},
		{"new field", `{"a":1}`, ".b = 2", `{"a":1,"b":2}`},
		{"leading dot optional", `{"a":1}`, "a = 2", `{"a":2}`},
		{"auto-vivify nested objects", `{}`, ".a.b = 5", `{"a":{"b":5}}`},
		{"deep vivification", `{}`, ".a.b.c.d = 1", `{"a":{"b":{"c":{"d":1}}}}`},
		{"array element replace", `{"arr":[9]}`, ".arr[0] = 1", `{"arr":[1]}`},
		{"array append on empty", `{"arr":[]}`, ".arr[0] = 1", `{"arr":[1]}`},
		{"append past end pads with null", `{"arr":[1]}`, ".arr[3] = 9", `{"arr":[1,null,null,9]}`},
		{"vivify array for index segment", `{}`, ".arr[0] = 1", `{"arr":[1]}`},
		{"negative index", `{"arr":[1,2,3]}`, ".arr[-1] = 9", `{"arr":[1,2,9]}`},
		{"string value", `{}`, `.name = "x"`, `{"name":"x"}`},
		{"bare word value", `{}`, ".mode = fast", `{"mode":"fast"}`},
		{"object value", `{}`, `.cfg = {"on": true}`, `{"cfg":{"on":true}}`},
		{"rhs sees document root", `{"a":1,"b":0}`, ".b = .a + 1", `{"a":1,"b":2}`},
		{"root replacement", `{"a":1}`, ". = [1,2]", `[1,2]`},
		{"bracket string key", `{}`, `.["a b"] = 1`, `{"a b":1}`},
		{"bracket key mid-path", `{}`, `.cfg.["a b"] = 1`, `{"cfg":{"a b":1}}`},
		{"root index", `[1,2]`, ".[0] = 9", `[9,2]`},
		{"slice splice", `{"arr":[1,2,3,4]}`, ".arr[1:3] = [9]", `{"arr":[1,9,4]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, write(t, tt.doc, tt.query))
		})
	}
}

func TestExecuteWrite_NoCompoundKeys(t *testing.T) {
	v := mustDecode(t, `{"users":[{"profile":{"email":"a"}}]}`)
	require.NoError(t, query.ExecuteWrite(v, `.users[0].profile.email = "x"`))

	assert.Equal(t, []string{"users"}, v.Keys())
	results, err := query.Execute(v, ".users[0].profile.email")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, `"x"`, results[0].String())
}

func TestExecuteWrite_CompoundOperators(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		query    string
		expected string
	}{
		{"add assign", `{"n":1}`, ".n += 2", `{"n":3}`},
		{"subtract assign", `{"n":5}`, ".n -= 2", `{"n":3}`},
		{"multiply assign", `{"n":3}`, ".n *= 4", `{"n":12}`},
		{"divide assign", `{"n":10}`, ".n /= 4", `{"n":2.5}`},
		{"string append", `{"s":"a"}`, `.s += "b"`, `{"s":"ab"}`},
		{"array append", `{"a":[1]}`, ".a += [2]", `{"a":[1,2]}`},
		{"update with expression", `{"n":2}`, ".n |= . * 10", `{"n":20}`},
		{"update nested", `{"a":{"list":[3,1,2]}}`, ".a.list |= sort", `{"a":{"list":[1,2,3]}}`},
		{"update whole document", `[3,1,2]`, ". |= sort", `[1,2,3]`},
		{"compound op in array", `{"arr":[1,2]}`, ".arr[1] += 10", `{"arr":[1,12]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, write(t, tt.doc, tt.query))
		})
	}
}

func TestExecuteWrite_RoundTrip(t *testing.T) {
	v := mustDecode(t, `{}`)
	require.NoError(t, query.ExecuteWrite(v, ".a.b = 5"))
	assert.Equal(t, `{"a":{"b":5}}`, v.String())

	results, err := query.Execute(v, ".a.b")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "5", results[0].String())
}

func TestExecuteWrite_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		query string
		kind  query.ErrorKind
	}{
		{"not an assignment", `{}`, ".a", query.ErrParse},
		{"field through scalar", `{"a":5}`, ".a.b = 1", query.ErrType},
		{"index through object", `{"a":{}}`, ".a[0] = 1", query.ErrType},
		{"negative index out of range", `{"arr":[1]}`, ".arr[-5] = 1", query.ErrIndexOutOfRange},
		{"slice mid-path", `{"a":[[1]]}`, ".a[0:1].x = 1", query.ErrPathNotFound},
		{"rhs parse error", `{}`, ".a = (1 +", query.ErrParse},
		{"rhs runtime error", `{}`, ".a = 1/0", query.ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qerr := writeErr(t, tt.doc, tt.query)
			assert.Equal(t, tt.kind, qerr.Kind)
		})
	}
}
