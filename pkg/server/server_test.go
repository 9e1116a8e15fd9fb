package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/workspace"
)

func init() {
	// Set Gin to test mode to reduce noise
	gin.SetMode(gin.TestMode)
}

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	return ws
}

func TestNew_RegistersTools(t *testing.T) {
	s := New(newTestWorkspace(t))
	require.NotNil(t, s)
}

func TestUnmarshalArgs(t *testing.T) {
	var args struct {
		Path  string `json:"path"`
		Limit int    `json:"limit"`
	}
	err := unmarshalArgs(map[string]any{"path": "a/b.txt", "limit": 10}, &args)
	require.NoError(t, err)
	assert.Equal(t, "a/b.txt", args.Path)
	assert.Equal(t, 10, args.Limit)
}

func TestUnmarshalArgs_UnknownFieldsIgnored(t *testing.T) {
	var args struct {
		Path string `json:"path"`
	}
	err := unmarshalArgs(map[string]any{"path": "x", "extra": true}, &args)
	require.NoError(t, err)
	assert.Equal(t, "x", args.Path)
}

func TestToolError_CarriesToolIdentity(t *testing.T) {
	msg := toolError("jsonq", errors.New("type error: cannot index string with number"))
	assert.Equal(t, "projectfiles:jsonq - type error: cannot index string with number", msg)
}

func TestJSONResult(t *testing.T) {
	res, err := jsonResult(map[string]any{"exists": true})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.IsError)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(requestLogger())
	router.GET("/mcp", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}
