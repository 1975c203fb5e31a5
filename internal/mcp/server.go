package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcpscan/internal/core"
	"mcpscan/internal/logging"
	"mcpscan/internal/report"
	"mcpscan/internal/repository"
)

const (
	serverName    = "mcpscan"
	serverVersion = "1.0.0"
)

// Server wraps an mcp-go server whose tools delegate to a core.Service.
type Server struct {
	svc       *core.Service
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(svc *core.Service, logger *logging.AppLogger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)
	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	formatOpt := mcp.WithString("format",
		mcp.Description("Output format: json (default), yaml, markdown or text"),
	)

	sourceTool := mcp.NewTool("analyze_source",
		mcp.WithDescription("Extract @tool, @prompt and @resource annotations from source text and report their relationships"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Source text to analyze"),
		),
		mcp.WithString("path",
			mcp.Description("File name reported in errors (default: input.ts)"),
		),
		formatOpt,
	)
	s.mcpServer.AddTool(sourceTool, s.handleAnalyzeSource)

	directoryTool := mcp.NewTool("analyze_directory",
		mcp.WithDescription("Analyze every source file under a local directory"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to scan"),
		),
		formatOpt,
	)
	s.mcpServer.AddTool(directoryTool, s.handleAnalyzeDirectory)

	repositoryTool := mcp.NewTool("analyze_repository",
		mcp.WithDescription("Clone a git repository and analyze its files"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Repository URL or owner/repo shorthand for GitHub"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to analyze (default: the repository's default branch)"),
		),
		formatOpt,
	)
	s.mcpServer.AddTool(repositoryTool, s.handleAnalyzeRepository)
}

func (s *Server) handleAnalyzeSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content parameter is required"), nil
	}
	path := request.GetString("path", "")

	s.logger.Debug("MCP analyze_source", "path", path, "bytes", len(content))
	return s.result(s.svc.AnalyzeCode(path, content), request)
}

func (s *Server) handleAnalyzeDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil || strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	s.logger.Debug("MCP analyze_directory", "path", path)
	r, err := s.svc.AnalyzeDirectory(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to analyze directory: %v", err)), nil
	}
	return s.result(r, request)
}

func (s *Server) handleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required"), nil
	}

	rc, err := repository.ParseRepositoryURL(url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if branch := request.GetString("branch", ""); branch != "" {
		rc.Branch = branch
	}

	s.logger.Debug("MCP analyze_repository", "repository", rc.String())
	r, err := s.svc.AnalyzeRepository(ctx, rc)
	if err != nil {
		var fetchErr *repository.FetchError
		if errors.As(err, &fetchErr) {
			return mcp.NewToolResultError(fmt.Sprintf("%s (status %d)", fetchErr.Error(), fetchErr.Status)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to analyze repository: %v", err)), nil
	}
	return s.result(r, request)
}

// result encodes r in the requested format. JSON output is always indented
// since it is read by a model, not piped to another program.
func (s *Server) result(r *report.Report, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", report.FormatJSON)

	var buf bytes.Buffer
	if err := report.Encode(&buf, r, format, true); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// Start serves MCP over stdin/stdout and blocks until stdin is closed.
func (s *Server) Start() error {
	s.logger.Info("Starting MCP server", "name", serverName, "version", serverVersion)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	s.logger.Info("MCP server stopped")
	return nil
}
