package chartio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seistools/seisavail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderWritesPNG(t *testing.T) {
	stations := []schema.StationID{
		{Network: "UW", Station: "RAIN"},
		{Network: "UW", Station: "OSD"},
	}
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)
	instructions := []schema.DrawInstruction{
		{Station: stations[0], Row: 2, Date: start, Attrs: schema.VisualAttributes{Color: schema.StationColor(0), StrokeWidth: 10}},
		{Station: stations[1], Row: 1, Date: start.AddDate(0, 0, 3), Attrs: schema.VisualAttributes{Color: schema.AlertColor, StrokeWidth: 6}},
	}
	outPath := filepath.Join(t.TempDir(), "plots", "seismic", "availability", "availability.png")

	err := NewEngine().Render(instructions, stations, start, end, outPath)

	require.NoError(t, err)
	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, content[:4])
}

func TestRenderEmptyRangeStillDrawsAxes(t *testing.T) {
	stations := []schema.StationID{{Network: "UW", Station: "RAIN"}}
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	outPath := filepath.Join(t.TempDir(), "availability.png")

	err := NewEngine().Render(nil, stations, start, start.AddDate(0, 0, 7), outPath)

	require.NoError(t, err)
	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
