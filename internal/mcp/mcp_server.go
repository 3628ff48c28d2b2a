// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seistools/seisavail/internal/contract"
)

// NewAvailabilityServer initializes and configures the availability MCP
// server without starting it. This is exposed for unit testing.
func NewAvailabilityServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Seisavail Availability Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_station_availability ---
	s.AddTool(mcp.NewTool("get_station_availability",
		mcp.WithDescription("Fetch the daily availability history of one station over a date range."),
		mcp.WithString("station", mcp.Description("Station identifier in NET.STA form."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Range start date (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Range end date (YYYY-MM-DD)."), mcp.Required()),
	), h.handleGetStationAvailability)

	// --- 2. Tool: summarize_availability ---
	s.AddTool(mcp.NewTool("summarize_availability",
		mcp.WithDescription("Summarize day counts per availability class over a date range."),
		mcp.WithString("start", mcp.Description("Range start date (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Range end date (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("station", mcp.Description("Optional NET.STA filter; defaults to all configured stations.")),
	), h.handleSummarizeAvailability)

	return s
}

// StartAvailabilityServer starts the availability MCP server over stdio.
func StartAvailabilityServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewAvailabilityServer(baseCfg, store)
	return server.ServeStdio(s)
}
