// Package contract provides interfaces and shared utilities for internal
// architecture.
package contract

import (
	"time"

	"github.com/seistools/seisavail/schema"
)

// WaveformDecoder turns one archived station-day file into trace segments.
// A file that cannot be interpreted as waveform data returns an error, which
// the compute pipeline classifies as the "no data" score rather than
// propagating.
type WaveformDecoder interface {
	Decode(path string) ([]schema.TraceSegment, error)
}

// ArchiveScanner locates the daily files of one (station, year) unit in the
// waveform archive.
type ArchiveScanner interface {
	// ScanYear returns the sorted day-file paths for the station and year.
	ScanYear(station schema.StationID, channel string, year int) ([]string, error)
}

// HistoryStore persists per-(station, year) availability histories.
// Load treats a missing resource as an empty history; a resource that exists
// but cannot be parsed is an error. Save rewrites the unit wholesale and
// skips empty histories entirely, so re-running a compute is idempotent.
type HistoryStore interface {
	Load(station schema.StationID, year int) ([]schema.DailyRecord, error)
	Save(station schema.StationID, year int, records []schema.DailyRecord) error
	Close() error
}

// TimelineRenderer consumes layout draw instructions and produces the final
// raster image. The core only decides what to draw, never how.
type TimelineRenderer interface {
	Render(instructions []schema.DrawInstruction, stations []schema.StationID, start, end time.Time, outPath string) error
}
