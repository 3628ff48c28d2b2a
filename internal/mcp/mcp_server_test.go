package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seistools/seisavail/internal/contract"
	mcp_internal "github.com/seistools/seisavail/internal/mcp"
	"github.com/seistools/seisavail/schema"
)

// fixedStore serves one canned history for UW.RAIN 2023.
type fixedStore struct{}

func (fixedStore) Load(station schema.StationID, year int) ([]schema.DailyRecord, error) {
	if station.Station != "RAIN" || year != 2023 {
		return nil, nil
	}
	return []schema.DailyRecord{
		{Date: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Score: schema.ScoreFull},
		{Date: time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC), Score: schema.ScoreOverlap},
	}, nil
}

func (fixedStore) Save(schema.StationID, int, []schema.DailyRecord) error { return nil }
func (fixedStore) Close() error                                          { return nil }

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	baseCfg := &contract.Config{
		Stations: []schema.StationID{{Network: "UW", Station: "RAIN"}},
	}
	s := mcp_internal.NewAvailabilityServer(baseCfg, fixedStore{})

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestGetStationAvailability(t *testing.T) {
	res := callTool(t, "get_station_availability", map[string]any{
		"station": "UW.RAIN",
		"start":   "2023-01-01",
		"end":     "2023-12-31",
	})

	require.False(t, res.IsError)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2023-06-01", rows[0]["date"])
	assert.Equal(t, 3.0, rows[0]["availability"])
}

func TestSummarizeAvailability(t *testing.T) {
	res := callTool(t, "summarize_availability", map[string]any{
		"start": "2023-01-01",
		"end":   "2023-12-31",
	})

	require.False(t, res.IsError)
	var summaries []struct {
		Station string         `json:"station"`
		Days    int            `json:"days"`
		Labels  map[string]int `json:"labels"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "UW.RAIN", summaries[0].Station)
	assert.Equal(t, 2, summaries[0].Days)
	assert.Equal(t, 1, summaries[0].Labels[contract.FullValue])
	assert.Equal(t, 1, summaries[0].Labels[contract.CorruptValue])
}

func TestHandlerValidationErrors(t *testing.T) {
	t.Run("missing station", func(t *testing.T) {
		res := callTool(t, "get_station_availability", map[string]any{
			"start": "2023-01-01",
			"end":   "2023-12-31",
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "station is required")
	})

	t.Run("bad date", func(t *testing.T) {
		res := callTool(t, "get_station_availability", map[string]any{
			"station": "UW.RAIN",
			"start":   "06/01/2023",
			"end":     "2023-12-31",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid start date")
	})

	t.Run("inverted range", func(t *testing.T) {
		res := callTool(t, "summarize_availability", map[string]any{
			"start": "2023-12-31",
			"end":   "2023-01-01",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "end date precedes start date")
	})
}
