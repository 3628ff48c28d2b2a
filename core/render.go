package core

import (
	"time"

	"github.com/seistools/seisavail/schema"
)

// Encode maps a score to its visual attributes on the timeline. The second
// return is false for the "no data" class, which draws nothing: absence on
// the plot is the signal. Width expresses severity (wider is worse within a
// color) and color separates problem classes from healthy recording.
func Encode(score schema.Score, stationColor string) (schema.VisualAttributes, bool) {
	switch score {
	case schema.ScoreOverlap:
		return schema.VisualAttributes{Color: schema.AlertColor, StrokeWidth: 6}, true
	case schema.ScoreLongGaps:
		return schema.VisualAttributes{Color: stationColor, StrokeWidth: 4}, true
	case schema.ScoreMixedGaps:
		return schema.VisualAttributes{Color: schema.NeutralDarkColor, StrokeWidth: 4}, true
	case schema.ScoreEvent:
		return schema.VisualAttributes{Color: stationColor, StrokeWidth: 2}, true
	case schema.ScoreShortGaps:
		return schema.VisualAttributes{Color: schema.NeutralDarkColor, StrokeWidth: 6}, true
	case schema.ScoreFull:
		return schema.VisualAttributes{Color: stationColor, StrokeWidth: 10}, true
	default:
		return schema.VisualAttributes{}, false
	}
}

// Layout turns per-station histories into draw instructions for the
// timeline. Stations stack top to bottom in input order: the i-th station
// draws at row len(stations)-i, so the first configured station sits at the
// top of the plot. Each station's color comes from its position in the same
// list, which keeps re-renders deterministic. Records outside [start, end]
// are dropped.
func Layout(
	histories map[schema.StationID][]schema.DailyRecord,
	stations []schema.StationID,
	start, end time.Time,
) []schema.DrawInstruction {
	var instructions []schema.DrawInstruction
	for i, station := range stations {
		row := len(stations) - i
		color := schema.StationColor(i)

		records := make([]schema.DailyRecord, len(histories[station]))
		copy(records, histories[station])
		schema.SortRecords(records)

		for _, r := range records {
			day := schema.DayOf(r.Date)
			if day.Before(start) || day.After(end) {
				continue
			}
			attrs, drawn := Encode(r.Score, color)
			if !drawn {
				continue
			}
			instructions = append(instructions, schema.DrawInstruction{
				Station: station,
				Row:     row,
				Date:    day,
				Attrs:   attrs,
			})
		}
	}
	return instructions
}
