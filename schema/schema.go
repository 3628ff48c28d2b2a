// Package schema has configs, models and shared constants for all parts of
// seisavail.
package schema

import (
	"fmt"
	"strings"
	"time"
)

// StationID identifies a sensor station by its SEED network and station codes.
type StationID struct {
	Network string // Two-character network code, e.g. "UW"
	Station string // Station code, e.g. "RAIN"
}

// String renders the identifier in the canonical "NET.STA" form.
func (s StationID) String() string {
	return s.Network + "." + s.Station
}

// ParseStationID splits a "NET.STA" identifier into its parts.
func ParseStationID(id string) (StationID, error) {
	parts := strings.Split(id, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return StationID{}, fmt.Errorf("invalid station identifier %q: expected NET.STA", id)
	}
	return StationID{Network: parts[0], Station: parts[1]}, nil
}

// TraceSegment is one contiguous run of samples for a station-day. Segments
// are produced by the waveform decoder and consumed transiently by the
// classifier; they are never persisted.
type TraceSegment struct {
	Start          time.Time
	SampleCount    int
	SampleInterval float64 // seconds per sample
}

// Duration returns the segment length in seconds.
func (t TraceSegment) Duration() float64 {
	return float64(t.SampleCount) * t.SampleInterval
}

// End returns the time immediately after the last sample.
func (t TraceSegment) End() time.Time {
	return t.Start.Add(time.Duration(t.Duration() * float64(time.Second)))
}

// GapSet summarizes the inter-segment silences of one station-day. Durations
// are in seconds; overlaps carry the (negative or near-zero) delta between
// intersecting segments.
type GapSet struct {
	Overlaps            []float64
	LongGaps            []float64
	ShortGaps           []float64
	MeanSegmentDuration float64
}

// DailyRecord pairs a calendar day with its availability score. The date is
// the identity key; a persisted history holds at most one record per date.
type DailyRecord struct {
	Date  time.Time `json:"date"`
	Score Score     `json:"availability"`
}

// VisualAttributes describes how one station-day is drawn on the timeline.
// Colors are hex RGB without a leading '#'; the rendering engine converts
// them to its own color type.
type VisualAttributes struct {
	Color       string
	StrokeWidth float64
}

// DrawInstruction is one bar on the availability timeline: a station-day at a
// given row, styled by the score encoding. The rendering engine turns each
// instruction into a horizontal line spanning the day.
type DrawInstruction struct {
	Station StationID
	Row     int
	Date    time.Time
	Attrs   VisualAttributes
}

// UnitResult summarizes one (station, year) compute unit for reporting.
type UnitResult struct {
	Station StationID
	Year    int
	Counts  map[Score]int // days per score class
	Err     error         // non-nil when the unit failed (corrupt history)
}
