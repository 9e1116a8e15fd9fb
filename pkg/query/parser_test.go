package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

func TestParse_Valid(t *testing.T) {
	queries := []string{
		".",
		".a.b.c",
		`.["key with spaces"]`,
		".[0]",
		".[-1]",
		".[1:3]",
		".[:2]",
		".[2:]",
		".[]",
		".items[*]",
		"..",
		".a | .b | .c",
		".a + .b * .c",
		"-.n",
		". > 1 and . < 10 or . == 0",
		".a // .b // 0",
		"map(select(.active))",
		"group_by(.type) | map({type: .[0].type, count: length})",
		`if .a then 1 elif .b then 2 else 3 end`,
		`if . then 1 else 2 end`,
		"try .a catch .b",
		"try . catch 0",
		".a?",
		".a[0].b[1:2][]?",
		"[.[] | . * 2]",
		"{a: 1, b: .x, (.k): 2, shorthand}",
		`test("[a-z]+", "i")`,
		". | not",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			_, err := query.Parse(q)
			assert.NoError(t, err)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty query", ""},
		{"dangling pipe", ".a |"},
		{"leading pipe", "| .a"},
		{"unbalanced bracket", ".a[0"},
		{"unbalanced paren", "(.a"},
		{"unbalanced brace", "{a: 1"},
		{"if without end", "if .a then 1"},
		{"if without then", "if .a 1 end"},
		{"unterminated string", `."ab`},
		{"unknown function", "frobnicate(.)"},
		{"too many arguments", "length(1)"},
		{"too few arguments", "map()"},
		{"operator without operand", ".a +"},
		{"lone question mark", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := query.Parse(tt.query)
			require.Error(t, err)
			qerr, ok := err.(*query.QueryError)
			require.True(t, ok)
			assert.Equal(t, query.ErrParse, qerr.Kind)
			assert.False(t, qerr.Catchable())
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := query.Parse(".a | frobnicate(.)")
	require.Error(t, err)
	qerr := err.(*query.QueryError)
	assert.Equal(t, query.ErrParse, qerr.Kind)
	assert.Greater(t, qerr.Pos, 0)
}
