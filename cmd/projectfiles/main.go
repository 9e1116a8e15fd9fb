package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/fsops"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/logger"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/server"
	"github.com/yolo-mcps/yolo-projectfiles/pkg/workspace"
)

var (
	log *logrus.Entry

	// Global options
	rootDir  string
	logLevel string

	// Serve command options
	useHTTP bool
	host    string
	port    int

	// Query command options
	queryFormat string
	queryWrite  bool
	queryBackup bool
)

func init() {
	log = logger.WithName("cli")
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "projectfiles",
		Short: "Sandboxed file tools for coding agents",
		Long: `projectfiles - MCP server exposing sandboxed file tools.

All operations are confined to a project root directory. Besides the usual
read/write/grep tools it ships jq-style query tools for JSON, YAML and TOML
documents, including in-place updates.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.ConfigureFromString(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory that confines all file operations")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Run:   runServe,
	}

	serveCmd.Flags().BoolVar(&useHTTP, "http", false, "Serve streamable HTTP instead of stdio")
	serveCmd.Flags().StringVar(&host, "host", "127.0.0.1", "Host to bind in HTTP mode")
	serveCmd.Flags().IntVar(&port, "port", 3000, "Port to listen on in HTTP mode")

	var queryCmd = &cobra.Command{
		Use:   "query <file> <expression>",
		Short: "Run a jq-style expression against a JSON, YAML or TOML file",
		Args:  cobra.ExactArgs(2),
		Run:   runQuery,
	}

	queryCmd.Flags().StringVar(&queryFormat, "format", "", "Output format: json, compact, raw, yaml or toml")
	queryCmd.Flags().BoolVar(&queryWrite, "write", false, "Treat the expression as an assignment and update the file")
	queryCmd.Flags().BoolVar(&queryBackup, "backup", false, "Keep a backup of the original when writing")

	rootCmd.AddCommand(serveCmd, queryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openWorkspace() *workspace.Workspace {
	ws, err := workspace.New(rootDir)
	if err != nil {
		log.WithError(err).Error("Failed to open project root")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return ws
}

func runServe(cmd *cobra.Command, args []string) {
	ws := openWorkspace()

	var err error
	if useHTTP {
		err = server.ServeHTTP(ws, host, port)
	} else {
		err = server.ServeStdio(ws)
	}
	if err != nil {
		log.WithError(err).Error("Server failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runQuery(cmd *cobra.Command, args []string) {
	file, expr := args[0], args[1]

	kind, err := docKindForFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ws := openWorkspace()
	ops := fsops.New(ws)

	if queryWrite {
		res, err := ops.QueryWrite(kind, file, expr, queryBackup)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if res.BackupPath != "" {
			fmt.Printf("Updated %s (backup: %s)\n", res.Path, res.BackupPath)
		} else {
			fmt.Printf("Updated %s\n", res.Path)
		}
		return
	}

	out, err := ops.QueryRead(kind, file, expr, queryFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// docKindForFile infers the document format from the file extension.
func docKindForFile(path string) (fsops.DocKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return fsops.DocJSON, nil
	case ".yaml", ".yml":
		return fsops.DocYAML, nil
	case ".toml":
		return fsops.DocTOML, nil
	}
	return "", fmt.Errorf("cannot infer document format from %q (expected .json, .yaml, .yml or .toml)", filepath.Base(path))
}
