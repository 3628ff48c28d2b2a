// Package chartio renders availability timelines to PNG. Each draw
// instruction becomes a horizontal bar spanning one calendar day at the
// station's row; the stroke color and width carry the score encoding.
package chartio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// Default raster dimensions in pixels.
const (
	DefaultWidth  = 1600
	DefaultHeight = 600
)

// Engine draws timelines with the go-chart raster backend.
type Engine struct {
	Width  int
	Height int
}

var _ contract.TimelineRenderer = Engine{} // Compile-time check

// NewEngine returns an engine with the default dimensions.
func NewEngine() Engine {
	return Engine{Width: DefaultWidth, Height: DefaultHeight}
}

// Render writes the timeline PNG to outPath, creating parent directories as
// needed. Every station in the list gets a labeled row even when none of its
// days drew a bar, so absences stay visible.
func (e Engine) Render(
	instructions []schema.DrawInstruction,
	stations []schema.StationID,
	start, end time.Time,
	outPath string,
) error {
	rangeStart := schema.DayOf(start)
	rangeEnd := schema.DayOf(end).AddDate(0, 0, 1)

	series := make([]chart.Series, 0, len(instructions)+1)
	// Invisible span keeps the axes populated when a range has no bars.
	series = append(series, chart.TimeSeries{
		XValues: []time.Time{rangeStart, rangeEnd},
		YValues: []float64{0, 0},
		Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 0},
	})
	for _, ins := range instructions {
		series = append(series, chart.TimeSeries{
			XValues: []time.Time{ins.Date, ins.Date.AddDate(0, 0, 1)},
			YValues: []float64{float64(ins.Row), float64(ins.Row)},
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(ins.Attrs.Color),
				StrokeWidth: ins.Attrs.StrokeWidth,
			},
		})
	}

	// Ticks ascend; the first configured station sits at the top row.
	yTicks := make([]chart.Tick, 0, len(stations)+2)
	yTicks = append(yTicks, chart.Tick{Value: 0, Label: ""})
	for row := 1; row <= len(stations); row++ {
		yTicks = append(yTicks, chart.Tick{Value: float64(row), Label: stations[len(stations)-row].String()})
	}
	yTicks = append(yTicks, chart.Tick{Value: float64(len(stations) + 1), Label: ""})

	width, height := e.Width, e.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	graph := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name: "Date",
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(rangeStart),
				Max: chart.TimeToFloat64(rangeEnd),
			},
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(stations) + 1)},
			Ticks: yTicks,
		},
		Series: series,
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating plot directory for %s: %w", outPath, err)
	}
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("writing plot %s: %w", outPath, err)
	}
	defer func() { _ = file.Close() }()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("rendering plot %s: %w", outPath, err)
	}
	return nil
}
