package contract

import (
	"testing"

	"github.com/seistools/seisavail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		ArchivePath: "/data/archive",
		ProductPath: "/data/products",
		Channel:     "HHZ",
		Stations:    []string{"UW.RAIN", "UW.OSD"},
		Years:       []int{2022, 2023},
		Start:       "2022-01-01",
		End:         "2023-12-31",
	}
}

// TestProcessAndValidateCompute covers the happy path for a compute run.
func TestProcessAndValidateCompute(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(), true, false))

	assert.Equal(t, "HHZ", cfg.Channel)
	assert.Equal(t, "seismic", cfg.Category)
	assert.Equal(t, []int{2022, 2023}, cfg.Years)
	assert.Len(t, cfg.Stations, 2)
	assert.Equal(t, schema.StationID{Network: "UW", Station: "RAIN"}, cfg.Stations[0])
	assert.Equal(t, schema.CSVBackend, cfg.StoreBackend)
	assert.Equal(t, schema.CSVOut, cfg.Output)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.True(t, cfg.UseColors)
}

// TestProcessAndValidateRange covers the visualise/export date range path.
func TestProcessAndValidateRange(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(), false, true))

	assert.Equal(t, 2022, cfg.StartTime.Year())
	assert.Equal(t, 2023, cfg.EndTime.Year())
	assert.Equal(t, DefaultFilename, cfg.Filename)
}

// TestProcessAndValidateRejections enumerates the validation failures.
func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ConfigRawInput)
		needYears bool
		needRange bool
	}{
		{name: "missing product path", mutate: func(in *ConfigRawInput) { in.ProductPath = "" }},
		{name: "short channel", mutate: func(in *ConfigRawInput) { in.Channel = "HH" }},
		{name: "unknown instrument code", mutate: func(in *ConfigRawInput) { in.Channel = "HXZ" }},
		{name: "no stations", mutate: func(in *ConfigRawInput) { in.Stations = nil }},
		{name: "bad station id", mutate: func(in *ConfigRawInput) { in.Stations = []string{"UWRAIN"} }},
		{name: "no years for compute", mutate: func(in *ConfigRawInput) { in.Years = nil }, needYears: true},
		{name: "bad start date", mutate: func(in *ConfigRawInput) { in.Start = "01/01/2022" }, needRange: true},
		{name: "inverted range", mutate: func(in *ConfigRawInput) { in.Start, in.End = in.End, in.Start }, needRange: true},
		{name: "bad store backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{name: "bad output mode", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			err := ProcessAndValidate(&Config{}, input, tt.needYears, tt.needRange)
			assert.Error(t, err)
		})
	}
}

// TestParseBoolString verifies the yes/no toggle handling.
func TestParseBoolString(t *testing.T) {
	assert.True(t, parseBoolString("yes", false))
	assert.True(t, parseBoolString("1", false))
	assert.False(t, parseBoolString("no", true))
	assert.False(t, parseBoolString("off", true))
	assert.True(t, parseBoolString("", true))
	assert.False(t, parseBoolString("whatever", false))
}

// TestGetPlainLabel spot-checks label assignment for the score classes.
func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, FullValue, GetPlainLabel(schema.ScoreFull))
	assert.Equal(t, CorruptValue, GetPlainLabel(schema.ScoreOverlap))
	assert.Equal(t, AbsentValue, GetPlainLabel(schema.ScoreNoData))
	assert.Equal(t, TelemValue, GetPlainLabel(schema.ScoreShortGaps))
	assert.Equal(t, PartialValue, GetPlainLabel(schema.ScoreMixedGaps))
}
