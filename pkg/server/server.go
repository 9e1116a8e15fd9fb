// Package server exposes the file tools over MCP, either on stdio or as a
// streamable HTTP endpoint behind gin.
package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/fsops"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/logger"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/workspace"
)

var log *logrus.Entry

func init() {
	log = logger.WithName("server")
}

const (
	serverName    = "projectfiles"
	serverVersion = "0.1.0"
)

// New builds the MCP server with every file tool registered against the
// given workspace.
func New(ws *workspace.Workspace) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	registerTools(s, fsops.New(ws))
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func ServeStdio(ws *workspace.Workspace) error {
	log.WithField("root", ws.Root()).Info("MCP server starting on stdio")
	return server.ServeStdio(New(ws))
}

// ServeHTTP blocks serving the streamable HTTP MCP endpoint at /mcp.
func ServeHTTP(ws *workspace.Workspace, host string, port int) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	httpServer := server.NewStreamableHTTPServer(
		New(ws),
		server.WithStateLess(true),
	)
	router.Any("/mcp", gin.WrapH(httpServer))

	addr := fmt.Sprintf("%s:%d", host, port)
	log.WithFields(logrus.Fields{
		"root":         ws.Root(),
		"addr":         addr,
		"mcp_endpoint": "/mcp",
	}).Info("MCP server starting on HTTP")
	return router.Run(addr)
}

// requestLogger logs each request with client and timing information.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		clientIP := c.Request.RemoteAddr
		if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
			clientIP = realIP
		} else if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
			for i := 0; i < len(forwarded); i++ {
				if forwarded[i] == ',' {
					forwarded = forwarded[:i]
					break
				}
			}
			clientIP = forwarded
		}

		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     path,
			"clientIP": clientIP,
		}).Debug("incoming request")

		c.Next()

		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Milliseconds(),
			"clientIP": clientIP,
		}).Info("request completed")
	}
}
