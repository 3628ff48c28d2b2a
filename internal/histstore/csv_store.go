package histstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// Column names of the persisted history files.
const (
	dateColumn  = "Date"
	scoreColumn = "Availability"
)

// CSVStore keeps one CSV file per (station, year) under the product tree:
// <product>/timeseries/<category>/availability/<year>/<net>/<sta>/<NET.STA>.<year>.availability.csv
type CSVStore struct {
	productPath string
	category    string
}

var _ contract.HistoryStore = &CSVStore{} // Compile-time check

// NewCSVStore returns a store rooted at the given product path.
func NewCSVStore(productPath, category string) *CSVStore {
	return &CSVStore{productPath: productPath, category: category}
}

// HistoryPath derives the on-disk location of one (station, year) history.
func (s *CSVStore) HistoryPath(station schema.StationID, year int) string {
	return filepath.Join(
		s.productPath, "timeseries", s.category, "availability",
		strconv.Itoa(year), station.Network, station.Station,
		fmt.Sprintf("%s.%d.availability.csv", station, year),
	)
}

// Load reads the history for a (station, year). A missing file is an empty
// history, not an error; a file that cannot be parsed is ErrCorruptHistory.
func (s *CSVStore) Load(station schema.StationID, year int) ([]schema.DailyRecord, error) {
	path := s.HistoryPath(station, year)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptHistory, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrCorruptHistory, path)
	}
	if len(rows[0]) < 2 || rows[0][0] != dateColumn || rows[0][1] != scoreColumn {
		return nil, fmt.Errorf("%w: %s: unexpected header %v", ErrCorruptHistory, path, rows[0])
	}

	records := make([]schema.DailyRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		date, err := schema.ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptHistory, path, err)
		}
		score, err := schema.ParseScore(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptHistory, path, err)
		}
		records = append(records, schema.DailyRecord{Date: date, Score: score})
	}
	return records, nil
}

// Save rewrites the (station, year) history wholesale. An empty history is
// never written: an absent resource stays absent.
func (s *CSVStore) Save(station schema.StationID, year int, records []schema.DailyRecord) error {
	if len(records) == 0 {
		return nil
	}

	path := s.HistoryPath(station, year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history directory for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing history %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// Sorted output keeps re-runs byte-identical, though readers never
	// assume any order.
	sorted := make([]schema.DailyRecord, len(records))
	copy(sorted, records)
	schema.SortRecords(sorted)

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{dateColumn, scoreColumn}); err != nil {
		return fmt.Errorf("writing history header: %w", err)
	}
	for _, r := range sorted {
		if err := writer.Write([]string{schema.FormatDate(r.Date), r.Score.FormatScore()}); err != nil {
			return fmt.Errorf("writing history row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Close is a no-op for the file-backed store.
func (s *CSVStore) Close() error {
	return nil
}
