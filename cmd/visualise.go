package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seistools/seisavail/core"
	"github.com/seistools/seisavail/internal/chartio"
	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/internal/histstore"
)

// visualiseCmd renders the availability timeline plot.
var visualiseCmd = &cobra.Command{
	Use:   "visualise",
	Short: "Render the availability timeline for a date range.",
	Long: `Load the persisted availability histories of the configured stations and
render them as a timeline PNG under the product tree.

Each station occupies one row; every scored day draws a bar whose color and
width encode the score class. Days that were never scored draw nothing, so
gaps in the plot are gaps in the archive.

Examples:
  # Plot a full year for two stations
  seisavail visualise --product-path /data/products \
    --stations UW.RAIN,UW.OSD --start 2023-01-01 --end 2023-12-31

  # Plot a multi-year range into a named file
  seisavail visualise --start 2021-01-01 --end 2023-12-31 --filename longterm`,
	Args:    cobra.NoArgs,
	PreRunE: rangeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := histstore.NewHistoryStore(cfg.StoreBackend, cfg.ProductPath, cfg.Category, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open history store", err)
		}
		defer func() { _ = store.Close() }()

		outPath, err := core.RunVisualise(cfg, store, chartio.NewEngine())
		if err != nil {
			contract.LogFatal("Cannot render timeline", err)
		}
		fmt.Printf("🖼️  Wrote timeline to %s\n", outPath)
	},
}
