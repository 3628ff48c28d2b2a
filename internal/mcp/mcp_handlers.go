package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/internal/outwriter"
	"github.com/seistools/seisavail/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

// rangeConfig derives a request-scoped config with the date range and station
// list from the tool arguments.
func (h *toolHandler) rangeConfig(request mcp.CallToolRequest, stationRequired bool) (*contract.Config, error) {
	cfg := *h.baseCfg

	start, err := schema.ParseDate(request.GetString("start", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := schema.ParseDate(request.GetString("end", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date")
	}
	cfg.StartTime = start
	cfg.EndTime = end

	raw := request.GetString("station", "")
	if raw != "" {
		station, err := schema.ParseStationID(raw)
		if err != nil {
			return nil, err
		}
		cfg.Stations = []schema.StationID{station}
	} else if stationRequired {
		return nil, fmt.Errorf("station is required")
	}

	return &cfg, nil
}

func (h *toolHandler) handleGetStationAvailability(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.rangeConfig(request, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid availability parameters: %v", err)), nil
	}

	rows, err := outwriter.BuildExportRows(cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// stationSummary is one station's day counts per availability label.
type stationSummary struct {
	Station string         `json:"station"`
	Days    int            `json:"days"`
	Labels  map[string]int `json:"labels"`
}

func (h *toolHandler) handleSummarizeAvailability(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.rangeConfig(request, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid availability parameters: %v", err)), nil
	}

	rows, err := outwriter.BuildExportRows(cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	byStation := make(map[string]*stationSummary)
	var order []string
	for _, row := range rows {
		key := row.Network + "." + row.Station
		summary, ok := byStation[key]
		if !ok {
			summary = &stationSummary{Station: key, Labels: make(map[string]int)}
			byStation[key] = summary
			order = append(order, key)
		}
		summary.Days++
		summary.Labels[row.Label]++
	}

	summaries := make([]stationSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, *byStation[key])
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
