// Package mseed reads the fixed headers of miniSEED v2 files and turns them
// into trace segments. Only headers are inspected; sample payloads are never
// decoded, which keeps a full-archive scan cheap.
package mseed

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/seistools/seisavail/internal/contract"
	"github.com/seistools/seisavail/schema"
)

// ErrBadFormat marks a file that cannot be interpreted as miniSEED. The
// compute pipeline classifies such files as the "no data" score.
var ErrBadFormat = errors.New("not a miniSEED file")

const (
	fixedHeaderSize = 48

	// defaultRecordLength applies when a record carries no blockette 1000.
	defaultRecordLength = 512

	// maxRecordLength bounds the 2^n record length from blockette 1000.
	maxRecordLength = 1 << 20
)

// Decoder reads station-day files header-only. The zero value is ready to
// use.
type Decoder struct{}

var _ contract.WaveformDecoder = Decoder{} // Compile-time check

// record is one parsed fixed header.
type record struct {
	channel        string
	start          time.Time
	sampleCount    int
	sampleInterval float64
	length         int
}

// Decode reads every record header in the file and coalesces contiguous
// records into trace segments. Records that carry no samples (e.g. log
// channels) are skipped. Any malformed record makes the whole file a decode
// failure.
func (Decoder) Decode(path string) ([]schema.TraceSegment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadFormat, path, err)
	}
	defer func() { _ = file.Close() }()

	var records []record
	var offset int64
	for {
		header := make([]byte, fixedHeaderSize)
		if _, err := io.ReadFull(file, header); err != nil {
			if errors.Is(err, io.EOF) && offset > 0 {
				break
			}
			if errors.Is(err, io.EOF) {
				return nil, nil // empty file, no data
			}
			return nil, fmt.Errorf("%w: %s: truncated record at offset %d", ErrBadFormat, path, offset)
		}

		rec, err := parseRecord(header, file, offset)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadFormat, path, err)
		}

		if rec.sampleCount > 0 && rec.sampleInterval > 0 {
			records = append(records, rec)
		}

		offset += int64(rec.length)
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadFormat, path, err)
		}
	}

	return coalesce(records), nil
}

// parseRecord interprets one fixed header plus its blockette chain. The
// reader is positioned just past the fixed header; blockettes are read via
// ReadAt-style seeking relative to the record start.
func parseRecord(header []byte, file *os.File, recordStart int64) (record, error) {
	if err := checkRecordMarker(header); err != nil {
		return record{}, err
	}

	order := binary.ByteOrder(binary.BigEndian)
	year := order.Uint16(header[20:22])
	if year < 1900 || year > 2100 {
		// Some digitizers write little-endian headers; blockette 1000
		// declares the order but sits behind the fields we need first.
		order = binary.LittleEndian
		year = order.Uint16(header[20:22])
		if year < 1900 || year > 2100 {
			return record{}, fmt.Errorf("implausible record year %d", year)
		}
	}

	doy := int(order.Uint16(header[22:24]))
	hour := int(header[24])
	minute := int(header[25])
	second := int(header[26])
	fract := int(order.Uint16(header[28:30])) // units of 0.0001 s

	start := time.Date(int(year), 1, 1, hour, minute, second, fract*100000, time.UTC).
		AddDate(0, 0, doy-1)

	sampleCount := int(order.Uint16(header[30:32]))
	factor := int(int16(order.Uint16(header[32:34])))
	multiplier := int(int16(order.Uint16(header[34:36])))
	rate := sampleRate(factor, multiplier)

	interval := 0.0
	if rate > 0 {
		interval = 1.0 / rate
	}

	length, err := recordLength(header, file, recordStart, order)
	if err != nil {
		return record{}, err
	}

	channel := string(header[18:20]) + "." + string(header[8:13]) + "." +
		string(header[13:15]) + "." + string(header[15:18])

	return record{
		channel:        channel,
		start:          start,
		sampleCount:    sampleCount,
		sampleInterval: interval,
		length:         length,
	}, nil
}

// checkRecordMarker validates the sequence number and quality indicator that
// open every miniSEED record.
func checkRecordMarker(header []byte) error {
	for _, b := range header[0:6] {
		if (b < '0' || b > '9') && b != ' ' {
			return fmt.Errorf("invalid sequence number %q", string(header[0:6]))
		}
	}
	switch header[6] {
	case 'D', 'R', 'Q', 'M':
		return nil
	default:
		return fmt.Errorf("invalid quality indicator %q", string(header[6]))
	}
}

// sampleRate derives samples per second from the SEED factor/multiplier pair.
func sampleRate(factor, multiplier int) float64 {
	if factor == 0 || multiplier == 0 {
		return 0
	}
	f, m := float64(factor), float64(multiplier)
	switch {
	case factor > 0 && multiplier > 0:
		return f * m
	case factor > 0 && multiplier < 0:
		return -f / m
	case factor < 0 && multiplier > 0:
		return -m / f
	default:
		return 1.0 / (f * m)
	}
}

// recordLength walks the blockette chain looking for blockette 1000, which
// declares the record length as a power of two. Records without one fall
// back to the common 512-byte length.
func recordLength(header []byte, file *os.File, recordStart int64, order binary.ByteOrder) (int, error) {
	numBlockettes := int(header[39])
	next := int64(order.Uint16(header[46:48]))

	for i := 0; i < numBlockettes && next >= fixedHeaderSize; i++ {
		head := make([]byte, 8)
		if _, err := file.ReadAt(head, recordStart+next); err != nil {
			return 0, fmt.Errorf("truncated blockette chain: %w", err)
		}
		blocketteType := order.Uint16(head[0:2])
		if blocketteType == 1000 {
			exp := int(head[6])
			if exp < 8 || 1<<exp > maxRecordLength {
				return 0, fmt.Errorf("implausible record length 2^%d", exp)
			}
			return 1 << exp, nil
		}
		next = int64(order.Uint16(head[2:4]))
	}
	return defaultRecordLength, nil
}

// coalesce merges contiguous records of the same channel into segments. Two
// records are contiguous when the second starts within half a sample period
// of the first one's end, the same tolerance full-featured readers apply.
func coalesce(records []record) []schema.TraceSegment {
	byChannel := make(map[string][]record)
	for _, rec := range records {
		byChannel[rec.channel] = append(byChannel[rec.channel], rec)
	}

	channels := make([]string, 0, len(byChannel))
	for ch := range byChannel {
		channels = append(channels, ch)
	}
	sort.Strings(channels)

	var segments []schema.TraceSegment
	for _, ch := range channels {
		recs := byChannel[ch]
		sort.Slice(recs, func(i, j int) bool { return recs[i].start.Before(recs[j].start) })

		current := schema.TraceSegment{
			Start:          recs[0].start,
			SampleCount:    recs[0].sampleCount,
			SampleInterval: recs[0].sampleInterval,
		}
		for _, rec := range recs[1:] {
			delta := rec.start.Sub(current.End()).Seconds()
			tolerance := current.SampleInterval / 2
			if rec.sampleInterval == current.SampleInterval && math.Abs(delta) <= tolerance {
				current.SampleCount += rec.sampleCount
				continue
			}
			segments = append(segments, current)
			current = schema.TraceSegment{
				Start:          rec.start,
				SampleCount:    rec.sampleCount,
				SampleInterval: rec.sampleInterval,
			}
		}
		segments = append(segments, current)
	}
	return segments
}
