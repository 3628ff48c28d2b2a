package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seistools/seisavail/core"
	"github.com/seistools/seisavail/internal/archive"
	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/internal/histstore"
	"github.com/seistools/seisavail/internal/mseed"
	"github.com/seistools/seisavail/internal/outwriter"
)

// computeCmd scores station-days and merges them into the histories.
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Score station-day files and update the availability histories.",
	Long: `Scan the waveform archive for the configured stations and years, score
every station-day file and merge the scores into the persisted availability
histories.

Each (station, year) is one unit of work: the unit's archive directory is
scanned, every day file is decoded header-only and classified, and the fresh
scores are merged into the unit's stored history. Where a day was scored
before, the fresh score wins, so re-running a compute is safe.

Examples:
  # Score two stations for 2023 against a local SDS archive
  seisavail compute --archive-path /data/archive --product-path /data/products \
    --stations UW.RAIN,UW.OSD --years 2023

  # Catch up several years with more workers
  seisavail compute --years 2021,2022,2023 --workers 8

  # Keep histories in SQLite instead of CSV files
  seisavail compute --years 2023 --store-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: computeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := histstore.NewHistoryStore(cfg.StoreBackend, cfg.ProductPath, cfg.Category, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open history store", err)
		}
		defer func() { _ = store.Close() }()

		fmt.Printf("🔎 Scoring %d station(s) across %d year(s) with %d worker(s)...\n",
			len(cfg.Stations), len(cfg.Years), cfg.Workers)

		started := time.Now()
		results, err := core.RunCompute(cfg, archive.NewScanner(cfg.ArchivePath), mseed.Decoder{}, store)
		if printErr := outwriter.PrintComputeResults(results, cfg, time.Since(started)); printErr != nil {
			contract.LogFatal("Cannot print compute results", printErr)
		}
		if err != nil {
			contract.LogFatal("Compute finished with failures", err)
		}
	},
}
