// Package cmd defines the command-line interface for seisavail.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seistools/seisavail/internal/contract"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(visualiseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("archive-path", "", "Root of the SDS waveform archive")
	rootCmd.PersistentFlags().String("product-path", "", "Root of the availability product tree")
	rootCmd.PersistentFlags().StringP("channel", "c", contract.DefaultChannel, "SEED channel code to process (e.g. HHZ, EHZ)")
	rootCmd.PersistentFlags().StringSliceP("stations", "s", nil, "Stations to process, in NET.STA form")
	rootCmd.PersistentFlags().IntSlice("years", nil, "Years to compute availability for")
	rootCmd.PersistentFlags().String("start", "", "Range start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end", "", "Range end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("filename", contract.DefaultFilename, "Basename of the timeline plot")
	rootCmd.PersistentFlags().IntP("workers", "w", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("store-backend", "csv", "History store backend: csv or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", "csv", "Export format: csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write export output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
