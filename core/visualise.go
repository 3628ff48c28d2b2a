package core

import (
	"fmt"
	"path/filepath"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// PlotPath derives the output location of the timeline image under the
// product tree.
func PlotPath(productPath, category, filename string) string {
	return filepath.Join(productPath, "plots", category, "availability", filename+".png")
}

// RunVisualise loads each station's history across the years the configured
// date range touches, lays the records out and hands the draw instructions to
// the rendering engine. Stations or years with no persisted history simply
// contribute no bars; a history that exists but cannot be read aborts the
// render.
func RunVisualise(cfg *contract.Config, store contract.HistoryStore, renderer contract.TimelineRenderer) (string, error) {
	histories := make(map[schema.StationID][]schema.DailyRecord, len(cfg.Stations))
	for _, station := range cfg.Stations {
		for year := cfg.StartTime.Year(); year <= cfg.EndTime.Year(); year++ {
			records, err := store.Load(station, year)
			if err != nil {
				return "", fmt.Errorf("loading history for %s %d: %w", station, year, err)
			}
			histories[station] = append(histories[station], records...)
		}
	}

	instructions := Layout(histories, cfg.Stations, cfg.StartTime, cfg.EndTime)
	outPath := PlotPath(cfg.ProductPath, cfg.Category, cfg.Filename)
	if err := renderer.Render(instructions, cfg.Stations, cfg.StartTime, cfg.EndTime, outPath); err != nil {
		return "", fmt.Errorf("rendering timeline: %w", err)
	}
	return outPath, nil
}
