// Package outwriter has output and writer logic: the compute summary table
// and the history export formats.
package outwriter

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// compactTableWidth is the terminal width below which the summary table drops
// its per-class columns.
const compactTableWidth = 100

// terminalWidth resolves the effective terminal width, honoring the override
// from flag/env and falling back to a conservative default when detection
// fails (narrow terminals and CI).
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}

// PrintComputeResults renders the per-unit summary table after a compute
// batch. Narrow terminals get a compact table without the per-class columns.
func PrintComputeResults(results []schema.UnitResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	compact := terminalWidth(cfg) < compactTableWidth
	headers := []string{"Station", "Year", "Days"}
	if !compact {
		headers = append(headers, "Full", "Gaps", "Event", "Overlap", "NoData")
	}
	headers = append(headers, "Status")
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range results {
		total := 0
		for _, n := range r.Counts {
			total += n
		}
		row := []string{r.Station.String(), strconv.Itoa(r.Year), strconv.Itoa(total)}
		if !compact {
			gaps := r.Counts[schema.ScoreLongGaps] + r.Counts[schema.ScoreMixedGaps] + r.Counts[schema.ScoreShortGaps]
			row = append(row,
				strconv.Itoa(r.Counts[schema.ScoreFull]),
				strconv.Itoa(gaps),
				strconv.Itoa(r.Counts[schema.ScoreEvent]),
				strconv.Itoa(r.Counts[schema.ScoreOverlap]),
				strconv.Itoa(r.Counts[schema.ScoreNoData]),
			)
		}
		row = append(row, unitStatus(r, cfg.UseColors))
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⏱️  Processed %d units in %s\n", len(results), duration.Round(time.Millisecond))
	return nil
}

// unitStatus renders the trailing status cell of one summary row.
func unitStatus(r schema.UnitResult, useColors bool) string {
	if r.Err == nil {
		if useColors {
			return contract.FullColor.Sprint("ok")
		}
		return "ok"
	}
	if useColors {
		return contract.CorruptColor.Sprint("failed")
	}
	return "failed"
}
