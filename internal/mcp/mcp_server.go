// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/archlens/archlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the ArchLens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"ArchLens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_architecture ---
	s.AddTool(mcp.NewTool("analyze_architecture",
		mcp.WithDescription("Classify the architecture pattern (mvc, clean, layered) of a Java/Spring source tree, with heuristic correction applied."),
		mcp.WithString("repo_path", mcp.Description("Path to the source tree (defaults to the configured repository if not specified).")),
		mcp.WithString("classifier_url", mcp.Description("Override the classifier service base URL.")),
	), h.handleAnalyzeArchitecture)

	// --- 2. Tool: extract_features ---
	s.AddTool(mcp.NewTool("extract_features",
		mcp.WithDescription("Extract the raw architecture feature vector from a Java/Spring source tree without classifying it."),
		mcp.WithString("repo_path", mcp.Description("Path to the source tree.")),
	), h.handleExtractFeatures)

	// --- 3. Tool: list_violations ---
	s.AddTool(mcp.NewTool("list_violations",
		mcp.WithDescription("Detect architecture violations (layer skips, reversed dependencies, dependency-rule breaches) in a Java/Spring source tree."),
		mcp.WithString("repo_path", mcp.Description("Path to the source tree.")),
		mcp.WithString("severity", mcp.Description("Only report violations at or above this severity."), mcp.Enum("low", "medium", "high", "critical")),
	), h.handleListViolations)

	return s
}

// StartMCPServer starts the ArchLens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
