package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeYAML_PreservesKeyOrder(t *testing.T) {
	src := "z: 1\na: 2\nm: 3\n"
	v, err := DecodeYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
}

func TestDecodeYAML_Types(t *testing.T) {
	src := `
name: demo
count: 3
ratio: 0.5
enabled: true
nothing: null
tags:
  - a
  - b
nested:
  inner: 1
`
	v, err := DecodeYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"demo","count":3,"ratio":0.5,"enabled":true,"nothing":null,"tags":["a","b"],"nested":{"inner":1}}`, v.String())
}

func TestYAML_RoundTrip(t *testing.T) {
	src := "name: demo\nitems:\n  - 1\n  - 2\n"
	v, err := DecodeYAML([]byte(src))
	require.NoError(t, err)

	out, err := EncodeYAML(v)
	require.NoError(t, err)

	again, err := DecodeYAML(out)
	require.NoError(t, err)
	assert.True(t, v.Equal(again), "round trip changed the document: %s vs %s", v, again)
}

func TestDecodeYAML_Invalid(t *testing.T) {
	_, err := DecodeYAML([]byte("key: [unclosed"))
	assert.Error(t, err)
}
