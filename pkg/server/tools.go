package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yolo-mcps/yolo-projectfiles/pkg/fsops"
)

// registerTools wires every file tool onto the MCP server.
func registerTools(s *server.MCPServer, ops *fsops.Ops) {
	registerReadTool(s, ops)
	registerWriteTool(s, ops)
	registerEditTool(s, ops)
	registerListTool(s, ops)
	registerFindTool(s, ops)
	registerGrepTool(s, ops)
	registerCopyTool(s, ops)
	registerMoveTool(s, ops)
	registerDeleteTool(s, ops)
	registerMkdirTool(s, ops)
	registerExistsTool(s, ops)
	registerStatTool(s, ops)
	registerChmodTool(s, ops)
	registerTouchTool(s, ops)
	registerTreeTool(s, ops)
	registerWcTool(s, ops)
	registerHashTool(s, ops)
	registerDiffTool(s, ops)

	registerDocQueryTool(s, ops, "jsonq", fsops.DocJSON,
		"Query or update a JSON file with a jq-style expression")
	registerDocQueryTool(s, ops, "yamlq", fsops.DocYAML,
		"Query or update a YAML file with a jq-style expression")
	registerDocQueryTool(s, ops, "tomlq", fsops.DocTOML,
		"Query or update a TOML file with a jq-style expression")
}

func unmarshalArgs(arguments any, v any) error {
	data, err := json.Marshal(arguments)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// toolError prefixes a failure with the tool's identity so the caller can
// tell which operation raised it.
func toolError(name string, err error) string {
	return fmt.Sprintf("projectfiles:%s - %v", name, err)
}

// jsonResult renders a result struct as indented JSON tool output.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func registerReadTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("read",
		mcp.WithDescription("Read a file within the project directory, optionally a line window"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path relative to the project root")),
		mcp.WithNumber("offset", mcp.Description("1-based line to start from")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of lines to return")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path   string `json:"path"`
			Offset int    `json:"offset"`
			Limit  int    `json:"limit"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		content, err := ops.Read(args.Path, args.Offset, args.Limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(content), nil
	})
}

func registerWriteTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("write",
		mcp.WithDescription("Write or append file content atomically within the project directory"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path relative to the project root")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to write")),
		mcp.WithBoolean("append", mcp.Description("Append instead of replacing (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path    string `json:"path"`
			Content string `json:"content"`
			Append  bool   `json:"append"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		res, err := ops.Write(args.Path, args.Content, args.Append)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(res)
	})
}

func registerEditTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("edit",
		mcp.WithDescription("Find and replace in a file. The search string must be unique unless replace_all is set"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path relative to the project root")),
		mcp.WithString("old_string", mcp.Required(), mcp.Description("Exact text to replace")),
		mcp.WithString("new_string", mcp.Required(), mcp.Description("Replacement text")),
		mcp.WithNumber("expected_count", mcp.Description("Assert this occurrence count before editing")),
		mcp.WithBoolean("replace_all", mcp.Description("Replace every occurrence (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path          string `json:"path"`
			OldString     string `json:"old_string"`
			NewString     string `json:"new_string"`
			ExpectedCount int    `json:"expected_count"`
			ReplaceAll    bool   `json:"replace_all"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		res, err := ops.Edit(args.Path, args.OldString, args.NewString, args.ExpectedCount, args.ReplaceAll)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(res)
	})
}

func registerListTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("list",
		mcp.WithDescription("List directory entries, optionally recursive, optionally filtered by a name glob"),
		mcp.WithString("path", mcp.Description("Directory path (default: project root)")),
		mcp.WithBoolean("recursive", mcp.Description("Recurse into subdirectories (default: false)")),
		mcp.WithString("pattern", mcp.Description("Name glob such as *.go")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path      string `json:"path"`
			Recursive bool   `json:"recursive"`
			Pattern   string `json:"pattern"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			args.Path = "."
		}
		entries, err := ops.List(args.Path, args.Recursive, args.Pattern)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(entries)
	})
}

func registerFindTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("find",
		mcp.WithDescription("Find files and directories by name glob, type and size"),
		mcp.WithString("path", mcp.Description("Directory to search under (default: project root)")),
		mcp.WithString("name", mcp.Description("Name glob such as *.test.js")),
		mcp.WithString("type", mcp.Description("file, directory or any (default: any)")),
		mcp.WithNumber("min_size", mcp.Description("Minimum file size in bytes")),
		mcp.WithNumber("max_size", mcp.Description("Maximum file size in bytes, 0 = unbounded")),
		mcp.WithNumber("max_results", mcp.Description("Stop after this many results, 0 = unlimited")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path       string `json:"path"`
			Name       string `json:"name"`
			Type       string `json:"type"`
			MinSize    int64  `json:"min_size"`
			MaxSize    int64  `json:"max_size"`
			MaxResults int    `json:"max_results"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			args.Path = "."
		}
		found, err := ops.Find(args.Path, fsops.FindOptions{
			Name:       args.Name,
			Type:       args.Type,
			MinSize:    args.MinSize,
			MaxSize:    args.MaxSize,
			MaxResults: args.MaxResults,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(found)
	})
}

func registerGrepTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("grep",
		mcp.WithDescription("Search file contents with a regular expression"),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Regular expression to search for")),
		mcp.WithString("path", mcp.Description("File or directory to search (default: project root)")),
		mcp.WithString("include", mcp.Description("File name glob to include, e.g. *.go")),
		mcp.WithString("exclude", mcp.Description("File name glob to exclude")),
		mcp.WithBoolean("case_insensitive", mcp.Description("Match case-insensitively (default: false)")),
		mcp.WithBoolean("invert_match", mcp.Description("Return lines that do NOT match (default: false)")),
		mcp.WithNumber("context_before", mcp.Description("Lines of context before each match")),
		mcp.WithNumber("context_after", mcp.Description("Lines of context after each match")),
		mcp.WithNumber("max_results", mcp.Description("Stop after this many matches (default: 100)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Pattern         string `json:"pattern"`
			Path            string `json:"path"`
			Include         string `json:"include"`
			Exclude         string `json:"exclude"`
			CaseInsensitive bool   `json:"case_insensitive"`
			InvertMatch     bool   `json:"invert_match"`
			ContextBefore   int    `json:"context_before"`
			ContextAfter    int    `json:"context_after"`
			MaxResults      *int   `json:"max_results"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		maxResults := 100
		if args.MaxResults != nil {
			maxResults = *args.MaxResults
		}
		res, err := ops.Grep(fsops.GrepOptions{
			Pattern:         args.Pattern,
			Path:            args.Path,
			Include:         args.Include,
			Exclude:         args.Exclude,
			CaseInsensitive: args.CaseInsensitive,
			InvertMatch:     args.InvertMatch,
			ContextBefore:   args.ContextBefore,
			ContextAfter:    args.ContextAfter,
			MaxResults:      maxResults,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(res)
	})
}

func registerCopyTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("copy",
		mcp.WithDescription("Copy a file or directory tree within the project directory"),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source path")),
		mcp.WithString("destination", mcp.Required(), mcp.Description("Destination path")),
		mcp.WithBoolean("overwrite", mcp.Description("Replace an existing destination (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Source      string `json:"source"`
			Destination string `json:"destination"`
			Overwrite   bool   `json:"overwrite"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if err := ops.Copy(args.Source, args.Destination, args.Overwrite); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Copied %s to %s", args.Source, args.Destination)), nil
	})
}

func registerMoveTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("move",
		mcp.WithDescription("Move or rename a file or directory within the project directory"),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source path")),
		mcp.WithString("destination", mcp.Required(), mcp.Description("Destination path")),
		mcp.WithBoolean("overwrite", mcp.Description("Replace an existing destination (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Source      string `json:"source"`
			Destination string `json:"destination"`
			Overwrite   bool   `json:"overwrite"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if err := ops.Move(args.Source, args.Destination, args.Overwrite); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Moved %s to %s", args.Source, args.Destination)), nil
	})
}

func registerDeleteTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("delete",
		mcp.WithDescription("Delete a file, or a directory tree with recursive set"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to delete")),
		mcp.WithBoolean("recursive", mcp.Description("Delete directories recursively (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path      string `json:"path"`
			Recursive bool   `json:"recursive"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if err := ops.Delete(args.Path, args.Recursive); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted %s", args.Path)), nil
	})
}

func registerMkdirTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("mkdir",
		mcp.WithDescription("Create a directory within the project directory"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Directory path to create")),
		mcp.WithBoolean("parents", mcp.Description("Create missing parents like mkdir -p (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path    string `json:"path"`
			Parents bool   `json:"parents"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if err := ops.Mkdir(args.Path, args.Parents); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created %s", args.Path)), nil
	})
}

func registerExistsTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("exists",
		mcp.WithDescription("Check whether a path exists and what kind of entry it is"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to check")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path string `json:"path"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		exists, typ, err := ops.Exists(args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"path": args.Path, "exists": exists, "type": typ})
	})
}

func registerStatTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("stat",
		mcp.WithDescription("Get file or directory metadata: size, mode, timestamps"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to inspect")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path string `json:"path"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		res, err := ops.Stat(args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(res)
	})
}

func registerChmodTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("chmod",
		mcp.WithDescription("Change file permissions with an octal mode such as 644 or 0755"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to modify")),
		mcp.WithString("mode", mcp.Required(), mcp.Description("Octal mode, e.g. 644")),
		mcp.WithBoolean("recursive", mcp.Description("Apply to a directory tree (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path      string `json:"path"`
			Mode      string `json:"mode"`
			Recursive bool   `json:"recursive"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if err := ops.Chmod(args.Path, args.Mode, args.Recursive); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Changed mode of %s to %s", args.Path, args.Mode)), nil
	})
}

func registerTouchTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("touch",
		mcp.WithDescription("Update a file's timestamps, optionally creating it"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
		mcp.WithBoolean("create", mcp.Description("Create the file if missing (default: true)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path   string `json:"path"`
			Create *bool  `json:"create"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		create := true
		if args.Create != nil {
			create = *args.Create
		}
		if err := ops.Touch(args.Path, create); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Touched %s", args.Path)), nil
	})
}

func registerTreeTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("tree",
		mcp.WithDescription("Render a directory tree as nested JSON"),
		mcp.WithString("path", mcp.Description("Directory path (default: project root)")),
		mcp.WithNumber("max_depth", mcp.Description("Limit recursion depth, 0 = unlimited")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path     string `json:"path"`
			MaxDepth int    `json:"max_depth"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			args.Path = "."
		}
		tree, err := ops.Tree(args.Path, args.MaxDepth)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(tree)
	})
}

func registerWcTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("wc",
		mcp.WithDescription("Count lines, words, bytes and characters of a file"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path string `json:"path"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		res, err := ops.Wc(args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(res)
	})
}

func registerHashTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("hash",
		mcp.WithDescription("Compute a file digest with md5, sha1 or sha256"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
		mcp.WithString("algorithm", mcp.Description("md5, sha1 or sha256 (default: sha256)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path      string `json:"path"`
			Algorithm string `json:"algorithm"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		res, err := ops.Hash(args.Path, args.Algorithm)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(res)
	})
}

func registerDiffTool(s *server.MCPServer, ops *fsops.Ops) {
	tool := mcp.NewTool("diff",
		mcp.WithDescription("Produce a unified diff between two files"),
		mcp.WithString("path1", mcp.Required(), mcp.Description("First file")),
		mcp.WithString("path2", mcp.Required(), mcp.Description("Second file")),
		mcp.WithNumber("context", mcp.Description("Context lines per hunk (default: 3)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path1   string `json:"path1"`
			Path2   string `json:"path2"`
			Context int    `json:"context"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		out, err := ops.Diff(args.Path1, args.Path2, args.Context)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if out == "" {
			out = "Files are identical"
		}
		return mcp.NewToolResultText(out), nil
	})
}

func registerDocQueryTool(s *server.MCPServer, ops *fsops.Ops, name string, kind fsops.DocKind, description string) {
	tool := mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path relative to the project root")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Engine expression, e.g. .dependencies.react or .version = \"2.0\"")),
		mcp.WithString("operation", mcp.Description("read or write (default: read)")),
		mcp.WithString("format", mcp.Description("Read output format: json, compact, raw, or the document's native format")),
		mcp.WithBoolean("backup", mcp.Description("Keep a backup of the original on write (default: false)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Path      string `json:"path"`
			Query     string `json:"query"`
			Operation string `json:"operation"`
			Format    string `json:"format"`
			Backup    bool   `json:"backup"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		switch args.Operation {
		case "", "read":
			out, err := ops.QueryRead(kind, args.Path, args.Query, args.Format)
			if err != nil {
				return mcp.NewToolResultError(toolError(name, err)), nil
			}
			return mcp.NewToolResultText(out), nil
		case "write":
			res, err := ops.QueryWrite(kind, args.Path, args.Query, args.Backup)
			if err != nil {
				return mcp.NewToolResultError(toolError(name, err)), nil
			}
			return jsonResult(res)
		}
		return mcp.NewToolResultError(fmt.Sprintf("projectfiles:%s - unknown operation %q (read, write)", name, args.Operation)), nil
	})
}
