package recording

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/classify"
)

// sampleRateKey is the metadata key declaring the acquisition frequency.
const sampleRateKey = "Sample_Frequency_(Hz)"

// excludedColumns are system/trigger columns that carry no signal.
var excludedColumns = map[string]bool{
	"Trigger":      true,
	"Time_Offset":  true,
	"ADC_Status":   true,
	"ADC_Sequence": true,
	"Event":        true,
	"X3_":          true,
	"Comments":     true,
	"CMF":          true,
}

// Load parses an EEG/ECG export into a Recording.
//
// Lines before the header may be `#` comments or Key,Value metadata; the
// header is the first line starting with "Time,". Every data row must parse
// to floats for all kept columns, a malformed row aborts the load with a
// RowError.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	rec := &Recording{Path: path, SampleRate: DefaultSampleRate}

	// Preamble: comments and metadata until the header row.
	var header []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "Time,") {
			header = splitRow(line)
			break
		}
		if strings.Contains(line, sampleRateKey) {
			fields := splitRow(strings.TrimLeft(line, "# "))
			if len(fields) > 1 {
				if rate, err := strconv.ParseFloat(fields[1], 64); err == nil && rate > 0 {
					rec.SampleRate = rate
					rec.RateDeclared = true
				}
			}
		}
	}
	if header == nil {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", path, ErrNoHeader)
	}

	// Header columns after the time axis become channels, minus system
	// columns and blanks.
	type column struct {
		name  string
		index int
	}
	var columns []column
	for i, raw := range header[1:] {
		name := cleanName(raw)
		if name == "" || excludedColumns[name] {
			continue
		}
		columns = append(columns, column{name: name, index: i + 1})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoChannels)
	}

	samples := make([][]float64, len(columns))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := splitRow(line)
		if len(fields) < len(header) {
			return nil, &RowError{Line: lineNo, Err: fmt.Errorf("got %d fields, want %d", len(fields), len(header))}
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &RowError{Line: lineNo, Err: fmt.Errorf("time %q: %w", fields[0], err)}
		}
		rec.Time = append(rec.Time, t)
		for ci, col := range columns {
			v, err := strconv.ParseFloat(fields[col.index], 64)
			if err != nil {
				return nil, &RowError{Line: lineNo, Err: fmt.Errorf("column %s %q: %w", col.name, fields[col.index], err)}
			}
			samples[ci] = append(samples[ci], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	rec.Channels = make([]Channel, len(columns))
	for i, col := range columns {
		data := samples[i]
		if data == nil {
			data = []float64{}
		}
		cat := classify.Categorize(col.name, data)
		rec.Channels[i] = Channel{
			Name:     col.name,
			Unit:     classify.UnitFor(col.name, cat),
			Category: cat,
			Samples:  data,
		}
	}
	if rec.Time == nil {
		rec.Time = []float64{}
	}
	return rec, nil
}

func splitRow(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// cleanName normalizes header column names the way the acquisition software
// exports them: `**` markers dropped, `:` separators mapped to `_`.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "**", "")
	name = strings.ReplaceAll(name, ":", "_")
	return strings.TrimSpace(name)
}
