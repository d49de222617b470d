// Package mcpserver exposes the type checker to AI agents over the Model
// Context Protocol with a stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/pycheck/internal/checker"
	"github.com/pycheck/internal/diagnostics"
)

// Checker is the analysis surface the tools are built on.
type Checker interface {
	Check(ctx context.Context, params checker.CheckParams) (diagnostics.CheckResult, error)
	ListFiles(ctx context.Context, ignorePatterns []string) ([]string, error)
	DefaultPageSize() int
}

// Server wires the checker service into MCP tools.
type Server struct {
	mcp     *server.MCPServer
	checker Checker
}

// New creates the MCP server and registers its tools.
func New(c Checker, version string) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			"pycheck",
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		checker: c,
	}

	s.mcp.AddTool(checkTool(), s.handleCheckPythonTypes)
	s.mcp.AddTool(listFilesTool(), s.handleListPythonFiles)

	return s
}

// ServeStdio blocks serving MCP requests over stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	log.Info().Msg("Starting pycheck MCP server with stdio transport")
	return server.ServeStdio(s.mcp)
}

func checkTool() mcp.Tool {
	return mcp.NewTool("check_python_types",
		mcp.WithDescription("Run Pyright type checking on Python files in the configured project directory. "+
			"Analyzes Python code for type errors, providing detailed diagnostics about type mismatches, "+
			"missing type hints, and other type-related issues. Results are paginated; the summary always "+
			"describes the full analysis run."),
		mcp.WithString("severity_level",
			mcp.Description("Minimum severity to report (error, warning, information)"),
		),
		mcp.WithArray("ignore_patterns",
			mcp.Description("Additional glob patterns to ignore"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number for pagination (starts at 1; out-of-range values are clamped)"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Number of diagnostics per page (default 50)"),
		),
	)
}

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_python_files",
		mcp.WithDescription("List all Python files in the configured project directory that would be analyzed. "+
			"Useful for understanding what files will be checked before running the full type analysis."),
		mcp.WithArray("ignore_patterns",
			mcp.Description("Additional glob patterns to ignore"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func (s *Server) handleCheckPythonTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := checker.CheckParams{
		SeverityLevel:  req.GetString("severity_level", ""),
		IgnorePatterns: req.GetStringSlice("ignore_patterns", nil),
		Page:           req.GetInt("page", 1),
		PageSize:       req.GetInt("page_size", s.checker.DefaultPageSize()),
	}

	result, err := s.checker.Check(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Type checking failed")
		return mcp.NewToolResultErrorFromErr("type checking failed", err), nil
	}

	return jsonResult(result)
}

func (s *Server) handleListPythonFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patterns := req.GetStringSlice("ignore_patterns", nil)

	files, err := s.checker.ListFiles(ctx, patterns)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list files")
		return mcp.NewToolResultErrorFromErr("failed to list files", err), nil
	}
	if files == nil {
		files = []string{}
	}

	return jsonResult(files)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to encode result", err), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
