package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/internal/histstore"
	"github.com/seistools/seisavail/internal/outwriter"
)

// exportCmd dumps availability histories for downstream tools.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export availability histories as CSV, JSON or Parquet.",
	Long: `Flatten the persisted availability histories of the configured stations
over a date range into rows for downstream analysis.

Examples:
  # Dump a year of history to stdout as CSV
  seisavail export --stations UW.RAIN --start 2023-01-01 --end 2023-12-31

  # Write a Parquet file for a data warehouse load
  seisavail export --start 2020-01-01 --end 2023-12-31 \
    --output parquet --output-file availability.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: rangeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := histstore.NewHistoryStore(cfg.StoreBackend, cfg.ProductPath, cfg.Category, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open history store", err)
		}
		defer func() { _ = store.Close() }()

		rows, err := outwriter.BuildExportRows(cfg, store)
		if err != nil {
			contract.LogFatal("Cannot load histories", err)
		}
		if err := outwriter.WriteExport(rows, cfg); err != nil {
			contract.LogFatal("Cannot write export", err)
		}
	},
}
