package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seistools/seisavail/internal/contract"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env,
// flags). Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "seisavail",
	Short:              "Track waveform-archive availability for seismic stations.",
	Long:               `Seisavail scans a miniSEED day-file archive, scores the completeness of every station-day and keeps the scores as long-running availability histories you can plot and export.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".seisavail") // Name of config file (without extension)
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("SEISAVAIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("channel", contract.DefaultChannel)
	viper.SetDefault("filename", contract.DefaultFilename)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("store-backend", "csv")
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("output", "csv")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation. Compute requires a year
// list; visualise and export require a date range.
func sharedSetup(needYears, needRange bool) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing. This populates the global
	// 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input, needYears, needRange)
}

// computeSetupWrapper validates config for compute-style commands.
func computeSetupWrapper(_ *cobra.Command, _ []string) error {
	return sharedSetup(true, false)
}

// rangeSetupWrapper validates config for range-based commands.
func rangeSetupWrapper(_ *cobra.Command, _ []string) error {
	return sharedSetup(false, true)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
