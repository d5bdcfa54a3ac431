package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/covid19gng/goodnews/core"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.TableSource
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGetGoodNews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Country = contract.NormalizeCountry(request.GetString("country", cfg.Country))
	cfg.Active = request.GetBool("active", cfg.Active)
	if asOf := request.GetString("as_of", ""); asOf != "" {
		t, err := contract.ParseDate(asOf)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid as_of: %v", err)), nil
		}
		cfg.AsOf = t
	}

	result, err := core.RunGoodNews(ctx, cfg, h.src, h.mgr, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListLocations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Country = contract.NormalizeCountry(request.GetString("country", cfg.Country))

	rows, err := core.ListLocations(ctx, cfg, h.src, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
