package schema

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DateLayout is the on-disk date representation for availability histories.
const DateLayout = "2006-01-02"

// FormatDate renders a record date in the persisted ISO form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads a persisted ISO date back into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseScore validates and converts a persisted availability value.
func ParseScore(s string) (Score, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid availability value %q: %w", s, err)
	}
	score := Score(v)
	if _, ok := ValidScores[score]; !ok {
		return 0, fmt.Errorf("availability value %v is not on the score scale", v)
	}
	return score, nil
}

// FormatScore renders a score the way the histories persist it.
func (s Score) FormatScore() string {
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

// SortRecords orders daily records by date in place. Persisted histories
// guarantee no order, so consumers sort before use.
func SortRecords(records []DailyRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// RecordsByDate indexes records by their calendar day. Later entries replace
// earlier ones, which callers rely on for merge precedence.
func RecordsByDate(records []DailyRecord) map[time.Time]DailyRecord {
	byDate := make(map[time.Time]DailyRecord, len(records))
	for _, r := range records {
		byDate[DayOf(r.Date)] = r
	}
	return byDate
}
