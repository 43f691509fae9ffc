package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archlens/archlens/core"
	"github.com/archlens/archlens/internal/classifier"
	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/javasrc"
	"github.com/archlens/archlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// pipeline builds the per-request walker and predictor from a cloned config.
func pipeline(cfg *contract.Config) (contract.SourceWalker, contract.Predictor) {
	walker := javasrc.NewWalker(cfg.Excludes, cfg.PathFilter)
	predictor := classifier.NewHTTPClient(cfg.ClassifierURL, cfg.ClassifierTimeout)
	return walker, predictor
}

func (h *toolHandler) handleAnalyzeArchitecture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if u := request.GetString("classifier_url", ""); u != "" {
		cfg.ClassifierURL = u
	}

	walker, predictor := pipeline(cfg)
	output, err := core.GetAnalysisResults(core.WithSuppressHeader(ctx), cfg, walker, predictor, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output.Result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExtractFeatures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	walker, _ := pipeline(cfg)
	units, err := walker.Walk(core.WithSuppressHeader(ctx), cfg.RepoPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("feature extraction failed: %v", err)), nil
	}
	fv := core.Extract(units)

	jsonData, _ := json.MarshalIndent(fv, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListViolations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	floor := schema.Severity("")
	if s := request.GetString("severity", ""); s != "" {
		sev := schema.Severity(strings.ToLower(s))
		switch sev {
		case schema.LowSeverity, schema.MediumSeverity, schema.HighSeverity, schema.CriticalSeverity:
			floor = sev
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid severity %q (valid: low, medium, high, critical)", s)), nil
		}
	}

	walker, predictor := pipeline(cfg)
	report, err := core.GetViolationReport(core.WithSuppressHeader(ctx), cfg, walker, predictor)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("violation analysis failed: %v", err)), nil
	}

	if floor != "" {
		report.Units = report.Flagged(floor)
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
