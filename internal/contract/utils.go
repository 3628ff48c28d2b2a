package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/seistools/seisavail/schema"
)

// Availability label constants.
const (
	FullValue     = "Full"     // complete day
	PartialValue  = "Partial"  // gappy or event-like data
	CorruptValue  = "Corrupt"  // overlapping data
	AbsentValue   = "Absent"   // no data
	TelemValue    = "Telem"    // transmission gaps only
	UnscoredValue = "Unscored" // should not appear in a valid history
)

// Color variables for console output.
var (
	FullColor    = color.New(color.FgGreen, color.Bold) // healthy, complete recording
	PartialColor = color.New(color.FgYellow)            // caution, data present but gappy
	CorruptColor = color.New(color.FgRed, color.Bold)   // overlapping, needs attention
	AbsentColor  = color.New(color.FgBlack)             // nothing recorded
	TelemColor   = color.New(color.FgCyan)              // telemetry dropouts, usually benign
)

// GetPlainLabel returns a plain text label for a score class. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score schema.Score) string {
	switch score {
	case schema.ScoreFull:
		return FullValue
	case schema.ScoreOverlap:
		return CorruptValue
	case schema.ScoreNoData:
		return AbsentValue
	case schema.ScoreShortGaps:
		return TelemValue
	case schema.ScoreLongGaps, schema.ScoreMixedGaps, schema.ScoreEvent:
		return PartialValue
	default:
		return UnscoredValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(score schema.Score) string {
	text := GetPlainLabel(score)

	switch text {
	case FullValue:
		return FullColor.Sprint(text)
	case CorruptValue:
		return CorruptColor.Sprint(text)
	case TelemValue:
		return TelemColor.Sprint(text)
	case AbsentValue:
		return AbsentColor.Sprint(text)
	default:
		return PartialColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
}
