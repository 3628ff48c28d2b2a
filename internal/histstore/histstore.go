// Package histstore persists per-(station, year) availability histories.
package histstore

import (
	"fmt"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// ErrCorruptHistory marks a persisted history that exists but cannot be
// parsed. It is fatal for the (station, year) unit; callers decide whether
// the surrounding batch continues.
var ErrCorruptHistory = fmt.Errorf("corrupt availability history")

// Merge combines an existing history with freshly computed records. The
// result carries exactly one record per distinct date across the union;
// where the same date appears in both, the incoming record wins so a
// re-computation never leaves a stale score behind.
func Merge(existing, incoming []schema.DailyRecord) []schema.DailyRecord {
	byDate := schema.RecordsByDate(existing)
	for _, r := range incoming {
		byDate[schema.DayOf(r.Date)] = r
	}

	merged := make([]schema.DailyRecord, 0, len(byDate))
	for date, r := range byDate {
		merged = append(merged, schema.DailyRecord{Date: date, Score: r.Score})
	}
	return merged
}

// NewHistoryStore initializes a store for the configured backend. The CSV
// backend lays histories out as flat files under the product tree; the
// database backends keep them in a single table.
func NewHistoryStore(backend schema.StoreBackend, productPath, category, connStr string) (contract.HistoryStore, error) {
	switch backend {
	case schema.CSVBackend:
		return NewCSVStore(productPath, category), nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewDBStore(backend, productPath, connStr)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
