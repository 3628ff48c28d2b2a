package histstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seistools/seisavail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStation = schema.StationID{Network: "UW", Station: "RAIN"}

func day(d int) time.Time {
	return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC)
}

func recordSet(records []schema.DailyRecord) map[time.Time]schema.Score {
	set := make(map[time.Time]schema.Score, len(records))
	for _, r := range records {
		set[r.Date] = r.Score
	}
	return set
}

// TestMergeUnion verifies the result holds one record per distinct date.
func TestMergeUnion(t *testing.T) {
	existing := []schema.DailyRecord{
		{Date: day(1), Score: schema.ScoreFull},
		{Date: day(2), Score: schema.ScoreLongGaps},
	}
	incoming := []schema.DailyRecord{
		{Date: day(3), Score: schema.ScoreEvent},
	}

	merged := Merge(existing, incoming)

	require.Len(t, merged, 3)
	set := recordSet(merged)
	assert.Equal(t, schema.ScoreFull, set[day(1)])
	assert.Equal(t, schema.ScoreLongGaps, set[day(2)])
	assert.Equal(t, schema.ScoreEvent, set[day(3)])
}

// TestMergePrecedence verifies freshly computed records replace stale ones.
func TestMergePrecedence(t *testing.T) {
	existing := []schema.DailyRecord{{Date: day(1), Score: schema.ScoreLongGaps}}
	incoming := []schema.DailyRecord{{Date: day(1), Score: schema.ScoreFull}}

	merged := Merge(existing, incoming)

	require.Len(t, merged, 1)
	assert.Equal(t, schema.ScoreFull, merged[0].Score)
}

// TestMergeIdempotent verifies merge(merge(e, i), i) == merge(e, i).
func TestMergeIdempotent(t *testing.T) {
	existing := []schema.DailyRecord{
		{Date: day(1), Score: schema.ScoreLongGaps},
		{Date: day(2), Score: schema.ScoreFull},
	}
	incoming := []schema.DailyRecord{
		{Date: day(1), Score: schema.ScoreFull},
		{Date: day(3), Score: schema.ScoreOverlap},
	}

	once := Merge(existing, incoming)
	twice := Merge(once, incoming)

	assert.Equal(t, recordSet(once), recordSet(twice))
}

// TestCSVStoreRoundTrip persists a history and reads it back as an equal set.
func TestCSVStoreRoundTrip(t *testing.T) {
	store := NewCSVStore(t.TempDir(), "seismic")
	records := []schema.DailyRecord{
		{Date: day(5), Score: schema.ScoreShortGaps},
		{Date: day(1), Score: schema.ScoreFull},
		{Date: day(9), Score: schema.ScoreNoData},
	}

	require.NoError(t, store.Save(testStation, 2023, records))

	loaded, err := store.Load(testStation, 2023)
	require.NoError(t, err)
	assert.Equal(t, recordSet(records), recordSet(loaded))
}

// TestCSVStoreMissingIsEmpty treats an absent file as an empty history.
func TestCSVStoreMissingIsEmpty(t *testing.T) {
	store := NewCSVStore(t.TempDir(), "seismic")

	loaded, err := store.Load(testStation, 2023)

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

// TestCSVStoreEmptySaveWritesNothing preserves absence on an empty merge.
func TestCSVStoreEmptySaveWritesNothing(t *testing.T) {
	root := t.TempDir()
	store := NewCSVStore(root, "seismic")

	require.NoError(t, store.Save(testStation, 2023, nil))

	_, err := os.Stat(store.HistoryPath(testStation, 2023))
	assert.True(t, os.IsNotExist(err))
}

// TestCSVStoreRewriteIsIdempotent re-saves the same records and expects
// byte-identical output.
func TestCSVStoreRewriteIsIdempotent(t *testing.T) {
	store := NewCSVStore(t.TempDir(), "seismic")
	records := []schema.DailyRecord{
		{Date: day(2), Score: schema.ScoreFull},
		{Date: day(1), Score: schema.ScoreEvent},
	}

	require.NoError(t, store.Save(testStation, 2023, records))
	first, err := os.ReadFile(store.HistoryPath(testStation, 2023))
	require.NoError(t, err)

	require.NoError(t, store.Save(testStation, 2023, records))
	second, err := os.ReadFile(store.HistoryPath(testStation, 2023))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestCSVStoreCorruptFile surfaces unparsable histories as ErrCorruptHistory.
func TestCSVStoreCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "wrong header", content: "Day,Score\n2023-01-01,3\n"},
		{name: "bad date", content: "Date,Availability\n01/01/2023,3\n"},
		{name: "off-scale score", content: "Date,Availability\n2023-01-01,4.5\n"},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewCSVStore(t.TempDir(), "seismic")
			path := store.HistoryPath(testStation, 2023)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := store.Load(testStation, 2023)
			assert.ErrorIs(t, err, ErrCorruptHistory)
		})
	}
}

// TestDBStoreRoundTrip exercises the SQLite backend end to end: save,
// reload, then save a merged update and confirm the rewrite replaced the
// unit wholesale.
func TestDBStoreRoundTrip(t *testing.T) {
	store, err := NewDBStore(schema.SQLiteBackend, t.TempDir(), "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	records := []schema.DailyRecord{
		{Date: day(1), Score: schema.ScoreFull},
		{Date: day(2), Score: schema.ScoreLongGaps},
	}
	require.NoError(t, store.Save(testStation, 2023, records))

	loaded, err := store.Load(testStation, 2023)
	require.NoError(t, err)
	assert.Equal(t, recordSet(records), recordSet(loaded))

	updated := Merge(loaded, []schema.DailyRecord{{Date: day(2), Score: schema.ScoreFull}})
	require.NoError(t, store.Save(testStation, 2023, updated))

	reloaded, err := store.Load(testStation, 2023)
	require.NoError(t, err)
	assert.Equal(t, recordSet(updated), recordSet(reloaded))
}

// TestDBStoreIsolatesUnits confirms one station-year never leaks into another.
func TestDBStoreIsolatesUnits(t *testing.T) {
	store, err := NewDBStore(schema.SQLiteBackend, t.TempDir(), "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	other := schema.StationID{Network: "UW", Station: "OSD"}
	require.NoError(t, store.Save(testStation, 2023, []schema.DailyRecord{{Date: day(1), Score: schema.ScoreFull}}))
	require.NoError(t, store.Save(other, 2023, []schema.DailyRecord{{Date: day(1), Score: schema.ScoreEvent}}))

	loaded, err := store.Load(testStation, 2023)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, schema.ScoreFull, loaded[0].Score)

	empty, err := store.Load(testStation, 2022)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
