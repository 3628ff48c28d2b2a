package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seistools/seisavail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanYear(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "2023", "UW", "RAIN", "HHZ.D")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range []string{
		"UW.RAIN..HHZ.D.2023.152",
		"UW.RAIN..HHZ.D.2023.150",
		"UW.RAIN..HHZ.D.2023.151",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	paths, err := NewScanner(root).ScanYear(schema.StationID{Network: "UW", Station: "RAIN"}, "HHZ", 2023)

	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, "UW.RAIN..HHZ.D.2023.150", filepath.Base(paths[0]))
	assert.Equal(t, "UW.RAIN..HHZ.D.2023.152", filepath.Base(paths[2]))
}

func TestScanYearAbsentStation(t *testing.T) {
	paths, err := NewScanner(t.TempDir()).ScanYear(schema.StationID{Network: "UW", Station: "OSD"}, "HHZ", 2023)

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDayFromFilename(t *testing.T) {
	tests := []struct {
		name string
		path string
		want time.Time
	}{
		{
			name: "plain day",
			path: "/archive/2023/UW/RAIN/HHZ.D/UW.RAIN..HHZ.D.2023.152",
			want: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "first of year",
			path: "UW.RAIN.01.HHZ.D.2024.001",
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day 366",
			path: "UW.RAIN..HHZ.D.2024.366",
			want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DayFromFilename(tt.path)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v", got)
		})
	}
}

func TestDayFromFilenameRejects(t *testing.T) {
	for _, path := range []string{
		"notaname",
		"UW.RAIN..HHZ.D.2023.400",
		"UW.RAIN..HHZ.D.notayear.152",
		"UW.RAIN..HHZ.D.2023.jday",
	} {
		_, err := DayFromFilename(path)
		assert.Error(t, err, path)
	}
}
