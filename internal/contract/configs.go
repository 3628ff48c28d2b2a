package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/seistools/seisavail/schema"
)

// Default values for configuration.
const (
	DefaultChannel  = "HHZ"
	DefaultFilename = "availability"
)

// DefaultWorkers is the default number of concurrent compute workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	ArchivePath string
	ProductPath string
	Channel     string // full SEED channel code, e.g. HHZ
	Category    string // sensor category resolved from the channel
	Stations    []schema.StationID
	Years       []int // compute mode
	StartTime   time.Time
	EndTime     time.Time
	Filename    string // plot basename for visualise
	Workers     int

	StoreBackend   schema.StoreBackend
	StoreDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string

	UseColors bool // Enable colored labels in table output
	Width     int  // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	ArchivePath    string   `mapstructure:"archive-path"`
	ProductPath    string   `mapstructure:"product-path"`
	Channel        string   `mapstructure:"channel"`
	Stations       []string `mapstructure:"stations"`
	Years          []int    `mapstructure:"years"`
	Start          string   `mapstructure:"start"`
	End            string   `mapstructure:"end"`
	Filename       string   `mapstructure:"filename"`
	Workers        int      `mapstructure:"workers"`
	StoreBackend   string   `mapstructure:"store-backend"`
	StoreDBConnect string   `mapstructure:"store-db-connect"`
	Output         string   `mapstructure:"output"`
	OutputFile     string   `mapstructure:"output-file"`
	Color          string   `mapstructure:"color"`
	Width          int      `mapstructure:"width"`
}

// ProcessAndValidate turns the raw input into the final validated Config.
// needYears requires a non-empty year list (compute); needRange requires a
// parsable start/end date pair (visualise, export).
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, needYears, needRange bool) error {
	if input.ArchivePath == "" && needYears {
		return fmt.Errorf("archive-path is required")
	}
	if input.ProductPath == "" {
		return fmt.Errorf("product-path is required")
	}
	cfg.ArchivePath = input.ArchivePath
	cfg.ProductPath = input.ProductPath

	channel := strings.ToUpper(strings.TrimSpace(input.Channel))
	if len(channel) != 3 {
		return fmt.Errorf("channel must be a 3-character SEED code, got %q", input.Channel)
	}
	category, err := schema.SourceCategory(channel)
	if err != nil {
		return err
	}
	cfg.Channel = channel
	cfg.Category = category

	if len(input.Stations) == 0 {
		return fmt.Errorf("at least one station is required")
	}
	cfg.Stations = make([]schema.StationID, 0, len(input.Stations))
	for _, raw := range input.Stations {
		station, err := schema.ParseStationID(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		cfg.Stations = append(cfg.Stations, station)
	}

	if needYears {
		if len(input.Years) == 0 {
			return fmt.Errorf("at least one year is required for compute")
		}
		cfg.Years = input.Years
	}

	if needRange {
		start, err := schema.ParseDate(input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		end, err := schema.ParseDate(input.End)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		if end.Before(start) {
			return fmt.Errorf("end date %s precedes start date %s", input.End, input.Start)
		}
		cfg.StartTime = start
		cfg.EndTime = end
	}

	cfg.Filename = input.Filename
	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}

	cfg.Workers = input.Workers
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}

	backend := schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if backend == "" {
		backend = schema.CSVBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("unsupported store backend: %s. Must be csv, sqlite, mysql, or postgresql", input.StoreBackend)
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect

	output := schema.OutputMode(strings.ToLower(input.Output))
	if output == "" {
		output = schema.CSVOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("unsupported output mode: %s. Must be csv, json, or parquet", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	cfg.UseColors = parseBoolString(input.Color, true)
	cfg.Width = input.Width

	return nil
}

// parseBoolString interprets the yes/no style toggles accepted on the CLI.
func parseBoolString(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
