package logger

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithName(t *testing.T) {
	entry := WithName("query")
	require.NotNil(t, entry)
	assert.Equal(t, "query", entry.Data["name"])
}

func TestWithFields(t *testing.T) {
	entry := WithFields(logrus.Fields{"path": "a.json", "tool": "jsonq"})
	require.NotNil(t, entry)
	assert.Equal(t, "a.json", entry.Data["path"])
	assert.Equal(t, "jsonq", entry.Data["tool"])
}

func TestSetLevel(t *testing.T) {
	original := defaultLogger.Level
	defer SetLevel(original)

	SetLevel(logrus.DebugLevel)
	assert.True(t, IsLevelEnabled(logrus.DebugLevel))
	assert.False(t, IsLevelEnabled(logrus.TraceLevel))

	SetLevel(logrus.ErrorLevel)
	assert.False(t, IsLevelEnabled(logrus.InfoLevel))
}

func TestConfigureFromString(t *testing.T) {
	originalLevel := defaultLogger.Level
	originalOut := defaultLogger.Out
	originalEnv := os.Getenv("GO_ENV")
	defer func() {
		SetLevel(originalLevel)
		defaultLogger.SetOutput(originalOut)
		os.Setenv("GO_ENV", originalEnv)
	}()

	tests := []struct {
		name    string
		env     string
		level   string
		wantErr bool
	}{
		{name: "test mode overrides level", env: "test", level: "debug"},
		{name: "silent discards output", level: "silent"},
		{name: "named level", level: "warn"},
		{name: "case insensitive", level: "DEBUG"},
		{name: "unknown level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("GO_ENV", tt.env)
			err := ConfigureFromString(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigureFromString_SilentUsesDiscard(t *testing.T) {
	originalOut := defaultLogger.Out
	originalEnv := os.Getenv("GO_ENV")
	defer func() {
		defaultLogger.SetOutput(originalOut)
		os.Setenv("GO_ENV", originalEnv)
	}()

	os.Setenv("GO_ENV", "")
	require.NoError(t, ConfigureFromString("silent"))
	assert.Equal(t, io.Discard, defaultLogger.Out)
}

// Stdout must stay clean in stdio transport mode, so the logger never
// writes there.
func TestLoggerNeverWritesStdout(t *testing.T) {
	assert.NotEqual(t, os.Stdout, defaultLogger.Out)
}
