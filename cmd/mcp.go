package cmd

import (
	"github.com/archlens/archlens/internal/iocache"
	"github.com/archlens/archlens/internal/mcp"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// mcpCmd starts the MCP server for AI assistant integration.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI assistant integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio.

This lets AI agents analyze Java repositories directly:
architecture classification, feature extraction and violation listings
become callable tools.

Exposed tools:
  analyze_architecture - Classify a repository's architecture pattern
  extract_features     - Extract the raw structural feature vector
  list_violations      - List dependency-rule violations

Examples:
  # Start the server (typically launched by the assistant runtime)
  archlens mcp`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, iocache.Manager)
	},
}
