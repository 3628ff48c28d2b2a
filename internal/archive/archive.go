// Package archive locates station-day waveform files in an SDS-layout
// archive: <root>/<year>/<network>/<station>/<channel>.D/<files>, where each
// file is named NET.STA.LOC.CHAN.D.YEAR.JDAY.
package archive

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// Scanner lists the day files of one (station, channel, year) directory.
type Scanner struct {
	Root string
}

var _ contract.ArchiveScanner = Scanner{} // Compile-time check

// NewScanner returns a scanner rooted at the archive directory.
func NewScanner(root string) Scanner {
	return Scanner{Root: root}
}

// ScanYear returns the day-file paths for a (station, channel, year), sorted
// so the batch walks days in order. An absent directory yields no paths.
func (s Scanner) ScanYear(station schema.StationID, channel string, year int) ([]string, error) {
	pattern := filepath.Join(
		s.Root, strconv.Itoa(year), station.Network, station.Station,
		channel+".D", "*",
	)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning archive for %s %s %d: %w", station, channel, year, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// DayFromFilename recovers the UTC calendar day from an SDS day-file name.
// The year and julian day sit in the two fields after the "D" type code.
func DayFromFilename(path string) (time.Time, error) {
	name := filepath.Base(path)
	fields := strings.Split(name, ".")
	if len(fields) < 7 {
		return time.Time{}, fmt.Errorf("unexpected day-file name %q", name)
	}

	year, err := strconv.Atoi(fields[len(fields)-2])
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected year in day-file name %q: %w", name, err)
	}
	jday, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected julian day in day-file name %q: %w", name, err)
	}
	if jday < 1 || jday > 366 {
		return time.Time{}, fmt.Errorf("julian day %d out of range in %q", jday, name)
	}

	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, jday-1), nil
}
