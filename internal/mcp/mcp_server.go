// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the goodnews MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.TableSource, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"COVID-19 Good News Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("get_good_news",
		mcp.WithDescription("Find recent good news in the COVID-19 time series: new lows in daily cases or deaths and recovery milestones."),
		mcp.WithString("country", mcp.Description("Country to report on, matched case-insensitively. Omit for all countries.")),
		mcp.WithString("as_of", mcp.Description("Evaluate the data as of this date (YYYY-MM-DD). Defaults to the latest date.")),
		mcp.WithBoolean("active", mcp.Description("Include the active cases section. Defaults to the server setting.")),
	), h.handleGetGoodNews)

	s.AddTool(mcp.NewTool("list_locations",
		mcp.WithDescription("List locations with their latest cumulative confirmed, deaths and recovered counts."),
		mcp.WithString("country", mcp.Description("Restrict to one country and its provinces or states.")),
	), h.handleListLocations)

	return s
}

// StartMCPServer starts the goodnews MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.TableSource, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, src, mgr)
	return server.ServeStdio(s)
}
