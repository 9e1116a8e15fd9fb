package fsops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRead_JSON(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "pkg.json", `{"name":"demo","deps":[{"name":"a","ver":1},{"name":"b","ver":2}]}`)

	tests := []struct {
		name     string
		query    string
		format   string
		expected string
	}{
		{"field compact", ".name", "compact", `"demo"`},
		{"field raw", ".name", "raw", "demo"},
		{"nested pipeline", ".deps | map(.name) | join(\",\")", "raw", "a,b"},
		{"multiple results", ".deps[].ver", "compact", "1\n2"},
		{"aggregate", ".deps | length", "compact", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := o.QueryRead(DocJSON, "pkg.json", tt.query, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestQueryRead_Errors(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "doc.json", `{"a":1}`)

	_, err := o.QueryRead(DocJSON, "doc.json", ".a |", "compact")
	assert.Error(t, err)

	_, err = o.QueryRead(DocJSON, "missing.json", ".", "compact")
	assert.Error(t, err)

	seedFile(t, o, "broken.json", "{not json")
	_, err = o.QueryRead(DocJSON, "broken.json", ".", "compact")
	assert.Error(t, err)
}

func TestQueryRead_YAML(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "cfg.yaml", "server:\n  host: localhost\n  port: 8080\n")

	out, err := o.QueryRead(DocYAML, "cfg.yaml", ".server.port", "compact")
	require.NoError(t, err)
	assert.Equal(t, "8080", out)

	out, err = o.QueryRead(DocYAML, "cfg.yaml", ".server", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "host: localhost")
}

func TestQueryRead_TOML(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "Cargo.toml", "[package]\nname = \"demo\"\nversion = \"1.0.0\"\n")

	out, err := o.QueryRead(DocTOML, "Cargo.toml", ".package.name", "raw")
	require.NoError(t, err)
	assert.Equal(t, "demo", out)

	out, err = o.QueryRead(DocTOML, "Cargo.toml", ".package", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, `name = 'demo'`)
}

func TestQueryWrite_JSON(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "cfg.json", `{"version":1,"items":[]}`)

	_, err := o.QueryWrite(DocJSON, "cfg.json", ".version = 2", false)
	require.NoError(t, err)

	out, err := o.QueryRead(DocJSON, "cfg.json", ".version", "compact")
	require.NoError(t, err)
	assert.Equal(t, "2", out)
}

func TestQueryWrite_AutoVivify(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "empty.json", `{}`)

	_, err := o.QueryWrite(DocJSON, "empty.json", `.a.b = 5`, false)
	require.NoError(t, err)

	out, err := o.QueryRead(DocJSON, "empty.json", ".a.b", "compact")
	require.NoError(t, err)
	assert.Equal(t, "5", out)
}

func TestQueryWrite_Backup(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "cfg.json", `{"n":1}`)

	res, err := o.QueryWrite(DocJSON, "cfg.json", ".n = 2", true)
	require.NoError(t, err)
	require.NotEmpty(t, res.BackupPath)
	assert.True(t, strings.Contains(res.BackupPath, ".bak-"))

	backup, err := os.ReadFile(filepath.Join(o.ws.Root(), res.BackupPath))
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, string(backup))
}

func TestQueryWrite_YAMLPreservesOrder(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "cfg.yaml", "zeta: 1\nalpha: 2\n")

	_, err := o.QueryWrite(DocYAML, "cfg.yaml", ".alpha = 3", false)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(o.ws.Root(), "cfg.yaml"))
	require.NoError(t, err)
	zeta := strings.Index(string(data), "zeta")
	alpha := strings.Index(string(data), "alpha")
	require.GreaterOrEqual(t, zeta, 0)
	require.GreaterOrEqual(t, alpha, 0)
	assert.Less(t, zeta, alpha, "document order changed: %s", data)
}

func TestQueryWrite_TOML(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "cfg.toml", "name = \"demo\"\n")

	_, err := o.QueryWrite(DocTOML, "cfg.toml", `.name = "renamed"`, false)
	require.NoError(t, err)

	out, err := o.QueryRead(DocTOML, "cfg.toml", ".name", "raw")
	require.NoError(t, err)
	assert.Equal(t, "renamed", out)
}

func TestQueryWrite_InvalidQuery(t *testing.T) {
	o := newTestOps(t)
	seedFile(t, o, "cfg.json", `{"n":1}`)

	_, err := o.QueryWrite(DocJSON, "cfg.json", ".n", false)
	assert.Error(t, err)

	// Failed writes leave the file untouched.
	out, rerr := o.QueryRead(DocJSON, "cfg.json", ".n", "compact")
	require.NoError(t, rerr)
	assert.Equal(t, "1", out)
}
