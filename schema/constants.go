package schema

import "fmt"

// Custom string types for type safety.
type (
	// OutputMode represents the format of exported output.
	OutputMode string

	// StoreBackend represents the backend used for availability histories.
	StoreBackend string
)

// Score is the ordinal availability classification for one station-day.
// The values form a fixed scale; 0.5 sits outside the completeness ordering
// and marks corrupt (overlapping) data.
type Score float64

// All availability scores supported.
const (
	ScoreNoData    Score = 0.0 // file missing or undecodable
	ScoreOverlap   Score = 0.5 // overlapping segments, corrupt data
	ScoreLongGaps  Score = 1.0 // gappy, long gaps only
	ScoreMixedGaps Score = 1.5 // gappy, long and short gaps
	ScoreEvent     Score = 2.0 // only short bursts of data present
	ScoreShortGaps Score = 2.5 // short gaps only, telemetry dropouts
	ScoreFull      Score = 3.0 // full day, no gaps
)

// ValidScores lists every score value a history may carry.
var ValidScores = map[Score]struct{}{
	ScoreNoData:    {},
	ScoreOverlap:   {},
	ScoreLongGaps:  {},
	ScoreMixedGaps: {},
	ScoreEvent:     {},
	ScoreShortGaps: {},
	ScoreFull:      {},
}

// All output modes supported by the export command.
const (
	CSVOut     OutputMode = "csv" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history store backends supported.
const (
	CSVBackend        StoreBackend = "csv" // default
	SQLiteBackend     StoreBackend = "sqlite"
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid history store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	CSVBackend:        {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ErrUnknownCategory is returned when a channel's instrument code has no
// registered sensor category.
var ErrUnknownCategory = fmt.Errorf("unknown sensor category")

// sourceCategories maps the SEED instrument code (second character of a
// channel code) to the sensor category used to route archive products.
// Never mutated at runtime.
var sourceCategories = map[byte]string{
	'H': "seismic",
	'L': "seismic",
	'M': "seismic",
	'N': "accelerometer",
	'P': "geophone",
	'A': "tilt",
	'B': "creep",
	'C': "calibration-input",
	'D': "pressure",
	'E': "electric-test",
	'F': "magnetic",
	'I': "humidity",
	'J': "rotational",
	'K': "temperature",
	'O': "water-current",
	'G': "gravimetric",
	'Q': "electric-potential",
	'R': "rainfall",
	'S': "linear-strain",
	'T': "tide",
	'U': "bolometric",
	'V': "volumetric-strain",
	'W': "wind",
}

// SourceCategory resolves the sensor category for a SEED channel code such as
// "HHZ". The instrument code is the channel's second character.
func SourceCategory(channel string) (string, error) {
	if len(channel) < 2 {
		return "", fmt.Errorf("%w: channel %q is too short", ErrUnknownCategory, channel)
	}
	category, ok := sourceCategories[channel[1]]
	if !ok {
		return "", fmt.Errorf("%w: instrument code %q", ErrUnknownCategory, string(channel[1]))
	}
	return category, nil
}

// StationPalette holds the per-station bar colors, cycled by station position
// in the requested list so repeated renders stay visually stable.
var StationPalette = []string{
	"b3e2cd",
	"fdcdac",
	"cbd5e8",
	"f4cae4",
	"e6f5c9",
	"fff2ae",
	"f1e2cc",
	"cccccc",
}

// Fixed colors used by the availability encoding.
const (
	AlertColor       = "ff0000" // overlapping data
	NeutralDarkColor = "000000" // mixed or transmission gaps
)

// StationColor returns the deterministic palette color for the station at the
// given position in the requested station list.
func StationColor(position int) string {
	if position < 0 {
		position = -position
	}
	return StationPalette[position%len(StationPalette)]
}
