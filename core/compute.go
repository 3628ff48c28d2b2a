package core

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/seistools/seisavail/internal/archive"
	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/internal/histstore"
	"github.com/seistools/seisavail/schema"
)

// EvaluateFile scores one archived station-day file. The calendar day comes
// from the file name; a file the decoder cannot interpret counts as a day
// with no usable data, not a pipeline failure.
func EvaluateFile(decoder contract.WaveformDecoder, path string) (time.Time, schema.Score, error) {
	day, err := archive.DayFromFilename(path)
	if err != nil {
		return time.Time{}, schema.ScoreNoData, err
	}

	segments, err := decoder.Decode(path)
	if err != nil {
		return day, schema.ScoreNoData, nil
	}
	return day, Classify(segments), nil
}

// ComputeUnit processes one (station, year): scan the archive, score each
// day file, merge into the persisted history and save. Files with
// unrecognizable names are skipped with a warning; a corrupt persisted
// history fails the unit without touching the store.
func ComputeUnit(
	scanner contract.ArchiveScanner,
	decoder contract.WaveformDecoder,
	store contract.HistoryStore,
	station schema.StationID,
	channel string,
	year int,
) schema.UnitResult {
	result := schema.UnitResult{Station: station, Year: year, Counts: make(map[schema.Score]int)}

	paths, err := scanner.ScanYear(station, channel, year)
	if err != nil {
		result.Err = err
		return result
	}

	var incoming []schema.DailyRecord
	for _, path := range paths {
		day, score, err := EvaluateFile(decoder, path)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("skipping %s", path), err)
			continue
		}
		incoming = append(incoming, schema.DailyRecord{Date: day, Score: score})
		result.Counts[score]++
	}

	if len(incoming) == 0 {
		// Nothing computed: leave the persisted history untouched.
		return result
	}

	existing, err := store.Load(station, year)
	if err != nil {
		result.Err = fmt.Errorf("unit %s %d: %w", station, year, err)
		return result
	}

	if err := store.Save(station, year, histstore.Merge(existing, incoming)); err != nil {
		result.Err = fmt.Errorf("unit %s %d: %w", station, year, err)
	}
	return result
}

// computeJob is one (station, year) unit queued for a worker.
type computeJob struct {
	station schema.StationID
	year    int
}

// RunCompute fans the configured (station, year) units out over a worker
// pool and collects the per-unit results. Failed units are reported but do
// not stop the batch; the returned error summarizes how many failed.
func RunCompute(
	cfg *contract.Config,
	scanner contract.ArchiveScanner,
	decoder contract.WaveformDecoder,
	store contract.HistoryStore,
) ([]schema.UnitResult, error) {
	jobs := make(chan computeJob)
	resultCh := make(chan schema.UnitResult)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				resultCh <- ComputeUnit(scanner, decoder, store, job.station, cfg.Channel, job.year)
			}
		}()
	}

	go func() {
		for _, station := range cfg.Stations {
			for _, year := range cfg.Years {
				jobs <- computeJob{station: station, year: year}
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var results []schema.UnitResult
	failed := 0
	for r := range resultCh {
		if r.Err != nil {
			failed++
			contract.LogWarn("compute unit failed", r.Err)
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Station != results[j].Station {
			return results[i].Station.String() < results[j].Station.String()
		}
		return results[i].Year < results[j].Year
	})

	if failed > 0 {
		return results, fmt.Errorf("%d of %d compute units failed", failed, len(results))
	}
	return results, nil
}
