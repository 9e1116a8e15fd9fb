package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/query"
)

func TestDecodeJSON_PreservesKeyOrder(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
}

func TestDecodeJSON_Types(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"null", "null", "null"},
		{"bool", "true", "true"},
		{"integer stays integral", "42", "42"},
		{"float", "4.5", "4.5"},
		{"exponent is float", "1e2", "100"},
		{"string", `"hi"`, `"hi"`},
		{"nested", `{"a":[1,{"b":null}]}`, `{"a":[1,{"b":null}]}`},
		{"unicode escape", `"é"`, `"é"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeJSON([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.String())
		})
	}
}

func TestDecodeJSON_IntegerFlag(t *testing.T) {
	v, err := DecodeJSON([]byte("42"))
	require.NoError(t, err)
	assert.True(t, v.IsInt())

	v, err = DecodeJSON([]byte("42.0"))
	require.NoError(t, err)
	assert.False(t, v.IsInt())
}

func TestDecodeJSON_Errors(t *testing.T) {
	for _, src := range []string{"", "{", `{"a":}`, "[1,]", `"unterminated`, "{} trailing"} {
		t.Run(src, func(t *testing.T) {
			_, err := DecodeJSON([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestEncodeJSON_Formats(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"a":[1,2],"s":"x"}`))
	require.NoError(t, err)

	compact, err := EncodeJSON(v, FormatCompact)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2],"s":"x"}`, compact)

	pretty, err := EncodeJSON(v, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"s\": \"x\"\n}", pretty)
}

func TestEncodeJSON_RawUnwrapsStrings(t *testing.T) {
	raw, err := EncodeJSON(query.NewString("plain text"), FormatRaw)
	require.NoError(t, err)
	assert.Equal(t, "plain text", raw)

	raw, err = EncodeJSON(query.NewInt(7), FormatRaw)
	require.NoError(t, err)
	assert.Equal(t, "7", raw)
}

func TestEncodeResults_OnePerLine(t *testing.T) {
	out, err := EncodeResults([]*query.Value{query.NewInt(1), query.NewInt(2)}, FormatCompact)
	require.NoError(t, err)
	assert.Equal(t, "1\n2", out)
}
