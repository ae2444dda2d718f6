// Package mcp exposes the analysis engine as an MCP (Model Context
// Protocol) tool over stdio. This is the calling layer: it validates the
// supplied project path, invokes the engine once per request, and
// applies output-size truncation; it performs no analysis itself.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hargabyte/archmap/internal/analyzer"
	"github.com/hargabyte/archmap/internal/config"
)

// DefaultMaxResultBytes caps tool result size before truncation.
const DefaultMaxResultBytes = 512 * 1024

// Config holds server configuration.
type Config struct {
	// MaxResultBytes truncates tool results larger than this.
	// Zero means DefaultMaxResultBytes.
	MaxResultBytes int
}

// Server wraps the MCP server with the analyze_architecture tool.
type Server struct {
	mcpServer      *server.MCPServer
	maxResultBytes int
}

// New creates an MCP server exposing the analyzer.
func New(cfg Config) *Server {
	maxBytes := cfg.MaxResultBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResultBytes
	}

	s := &Server{
		mcpServer: server.NewMCPServer(
			"archmap",
			"1.0.0",
			server.WithToolCapabilities(false),
		),
		maxResultBytes: maxBytes,
	}
	s.registerAnalyzeTool()
	return s
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerAnalyzeTool() {
	tool := mcp.NewTool("analyze_architecture",
		mcp.WithDescription("Analyze the dependency architecture of a project: modules, dependency edges, circular dependencies, layer violations, metrics, and a Mermaid graph."),
		mcp.WithString("projectPath",
			mcp.Required(),
			mcp.Description("Directory to analyze"),
		),
		mcp.WithString("excludePatterns",
			mcp.Description("Comma-separated path substrings to exclude"),
		),
		mcp.WithBoolean("detectCircular",
			mcp.Description("Run circular dependency detection (default: true)"),
		),
		mcp.WithBoolean("generateGraph",
			mcp.Description("Render the Mermaid dependency graph (default: true)"),
		),
		mcp.WithNumber("maxDepth",
			mcp.Description("Maximum directory depth to scan (default: unlimited)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleAnalyze)
}

func (s *Server) handleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projectPath, ok := args["projectPath"].(string)
	if !ok || projectPath == "" {
		return mcp.NewToolResultError("projectPath parameter is required"), nil
	}

	cfg := config.DefaultConfig()
	if patterns, ok := args["excludePatterns"].(string); ok && patterns != "" {
		cfg.Exclude = append(cfg.Exclude, splitPatterns(patterns)...)
	}
	if detect, ok := args["detectCircular"].(bool); ok {
		cfg.DetectCircular = &detect
	}
	if generate, ok := args["generateGraph"].(bool); ok {
		cfg.GenerateGraph = &generate
	}
	if depth, ok := args["maxDepth"].(float64); ok {
		cfg.MaxDepth = int(depth)
	}

	report, err := analyzer.Analyze(ctx, projectPath, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding report: %v", err)), nil
	}

	text := string(data)
	if len(text) > s.maxResultBytes {
		text = text[:s.maxResultBytes] + "\n... (result truncated)"
	}
	return mcp.NewToolResultText(text), nil
}

// splitPatterns splits a comma-separated pattern list, dropping empties.
func splitPatterns(s string) []string {
	var patterns []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}
