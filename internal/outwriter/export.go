package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/parquet-go/parquet-go"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// ExportRow is one flattened history record for downstream analysis tools.
// The parquet schema is inferred from the struct tags.
type ExportRow struct {
	Network      string  `json:"network" parquet:"network,snappy"`
	Station      string  `json:"station" parquet:"station,snappy"`
	Date         string  `json:"date" parquet:"date,snappy"`
	Availability float64 `json:"availability" parquet:"availability,snappy"`
	Label        string  `json:"label" parquet:"label,snappy"`
}

// BuildExportRows loads every configured station's history across the years
// the date range touches and flattens it into export rows ordered by station
// then date. Records outside the range are dropped.
func BuildExportRows(cfg *contract.Config, store contract.HistoryStore) ([]ExportRow, error) {
	var rows []ExportRow
	for _, station := range cfg.Stations {
		var records []schema.DailyRecord
		for year := cfg.StartTime.Year(); year <= cfg.EndTime.Year(); year++ {
			loaded, err := store.Load(station, year)
			if err != nil {
				return nil, fmt.Errorf("loading history for %s %d: %w", station, year, err)
			}
			records = append(records, loaded...)
		}
		schema.SortRecords(records)

		for _, r := range records {
			day := schema.DayOf(r.Date)
			if day.Before(cfg.StartTime) || day.After(cfg.EndTime) {
				continue
			}
			rows = append(rows, ExportRow{
				Network:      station.Network,
				Station:      station.Station,
				Date:         schema.FormatDate(day),
				Availability: float64(r.Score),
				Label:        contract.GetPlainLabel(r.Score),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Network != rows[j].Network {
			return rows[i].Network < rows[j].Network
		}
		if rows[i].Station != rows[j].Station {
			return rows[i].Station < rows[j].Station
		}
		return rows[i].Date < rows[j].Date
	})
	return rows, nil
}

// WriteExport writes the rows in the configured output format.
func WriteExport(rows []ExportRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeParquetRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, rows)
		}, "Wrote CSV")
	}
}

// writeCSVRows writes the export rows with a header line.
func writeCSVRows(w io.Writer, rows []ExportRow) error {
	header := []string{"network", "station", "date", "availability", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			record := []string{
				r.Network,
				r.Station,
				r.Date,
				schema.Score(r.Availability).FormatScore(),
				r.Label,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetRows writes the export rows using struct schema inference.
func writeParquetRows(w io.Writer, rows []ExportRow) error {
	writer := parquet.NewGenericWriter[ExportRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	return writer.Close()
}
