// Package core holds the availability heuristics: gap classification, history
// merging and the score-to-visual encoding.
package core

import (
	"sort"
	"time"

	"github.com/seistools/seisavail/schema"
)

// Thresholds of the gap classification heuristic. These are fixed values
// carried over from long-running archive deployments; they are deliberately
// not configurable.
const (
	// OverlapTolerance is the largest inter-segment delta still treated as
	// an overlap, in seconds.
	OverlapTolerance = 1e-5

	// ShortGapMax is the longest silence still counted as a short gap, in
	// seconds.
	ShortGapMax = 180.0

	// LongGapMin is the shortest silence counted as a long gap, in seconds.
	LongGapMin = 181.0

	// BurstMeanDuration separates event-like bursts from sustained
	// recording, in seconds of mean segment duration.
	BurstMeanDuration = 300.0

	// FullDaySeconds is the nominal length of a complete station-day.
	FullDaySeconds = 86400.0
)

// TelemetryCutoff is the time-of-day threshold for the earliest segment start
// when only short gaps are present: a first sample later than this suggests
// the day is genuinely gappy rather than a clean telemetry pattern.
const TelemetryCutoff = 3 * time.Minute

// BuildGapSet derives the gap summary for one station-day from its trace
// segments. Segments are sorted by start time; each inter-segment delta is
// binned as overlap, short gap or long gap. Deltas in (ShortGapMax,
// LongGapMin) fall in neither bin.
func BuildGapSet(segments []schema.TraceSegment) schema.GapSet {
	sorted := sortedByStart(segments)

	var gs schema.GapSet
	var total float64
	for i, seg := range sorted {
		total += seg.Duration()
		if i == 0 {
			continue
		}
		delta := sorted[i].Start.Sub(sorted[i-1].End()).Seconds()
		switch {
		case delta < OverlapTolerance:
			gs.Overlaps = append(gs.Overlaps, delta)
		case delta >= LongGapMin:
			gs.LongGaps = append(gs.LongGaps, delta)
		case delta <= ShortGapMax:
			gs.ShortGaps = append(gs.ShortGaps, delta)
		}
	}
	if len(sorted) > 0 {
		gs.MeanSegmentDuration = total / float64(len(sorted))
	}
	return gs
}

// dayFacts carries everything the decision list inspects for one station-day.
type dayFacts struct {
	gaps          schema.GapSet
	earliestOfDay time.Duration // time-of-day of the earliest segment start
}

// classifyRule pairs a predicate with the score it assigns. The rules form a
// priority-ordered decision list: the first match wins, and the order encodes
// the tie-breaks (overlap > long gap > short gap > partial day > full day).
type classifyRule struct {
	match func(dayFacts) bool
	score schema.Score
}

var classifyRules = []classifyRule{
	{func(f dayFacts) bool { return len(f.gaps.Overlaps) > 0 }, schema.ScoreOverlap},
	{func(f dayFacts) bool { return len(f.gaps.LongGaps) > 0 && f.gaps.MeanSegmentDuration < BurstMeanDuration }, schema.ScoreEvent},
	{func(f dayFacts) bool { return len(f.gaps.LongGaps) > 0 && len(f.gaps.ShortGaps) > 0 }, schema.ScoreMixedGaps},
	{func(f dayFacts) bool { return len(f.gaps.LongGaps) > 0 }, schema.ScoreLongGaps},
	{func(f dayFacts) bool { return len(f.gaps.ShortGaps) > 0 && f.gaps.MeanSegmentDuration < BurstMeanDuration }, schema.ScoreEvent},
	{func(f dayFacts) bool { return len(f.gaps.ShortGaps) > 0 && f.earliestOfDay > TelemetryCutoff }, schema.ScoreMixedGaps},
	{func(f dayFacts) bool { return len(f.gaps.ShortGaps) > 0 }, schema.ScoreShortGaps},
	{func(f dayFacts) bool { return f.gaps.MeanSegmentDuration < BurstMeanDuration }, schema.ScoreEvent},
	{func(f dayFacts) bool { return f.gaps.MeanSegmentDuration < FullDaySeconds }, schema.ScoreLongGaps},
	{func(dayFacts) bool { return true }, schema.ScoreFull},
}

// Classify computes the availability score for one station-day's decoded
// trace segments. An empty segment set is the "no data" class; a decode
// failure never reaches this function (EvaluateFile maps it to the same
// class). Classify has no side effects.
func Classify(segments []schema.TraceSegment) schema.Score {
	if len(segments) == 0 {
		return schema.ScoreNoData
	}

	sorted := sortedByStart(segments)
	facts := dayFacts{
		gaps:          BuildGapSet(sorted),
		earliestOfDay: timeOfDay(sorted[0].Start),
	}

	for _, rule := range classifyRules {
		if rule.match(facts) {
			return rule.score
		}
	}
	return schema.ScoreNoData // unreachable: the last rule always matches
}

// sortedByStart returns a copy of segments ordered by start time.
func sortedByStart(segments []schema.TraceSegment) []schema.TraceSegment {
	sorted := make([]schema.TraceSegment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}

// timeOfDay returns the offset of t from its UTC midnight.
func timeOfDay(t time.Time) time.Duration {
	return t.Sub(schema.DayOf(t))
}
