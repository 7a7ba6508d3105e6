package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (default: "value")
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has a header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "value",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// missingTokens are cell contents parsed as a missing observation.
var missingTokens = map[string]bool{
	"": true, ".": true, "na": true, "nan": true, "null": true,
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader. Unparseable or
// empty value cells become NaN so gaps survive into the series instead of
// shifting later observations.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	valueIdx, dateIdx := -1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			h = strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"")))
			switch {
			case h == strings.ToLower(opts.ValueColumn) || h == "y" || h == "value":
				if valueIdx == -1 {
					valueIdx = i
				}
			case (opts.DateColumn != "" && h == strings.ToLower(opts.DateColumn)) ||
				h == "ds" || h == "date" || h == "month" || h == "time":
				if dateIdx == -1 {
					dateIdx = i
				}
			}
		}
		if valueIdx == -1 {
			valueIdx = len(header) - 1
		}
	} else {
		dateIdx, valueIdx = 0, 1
	}

	var values []float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if valueIdx >= len(record) {
			return nil, fmt.Errorf("row has %d fields, value column is %d", len(record), valueIdx)
		}

		cell := strings.TrimSpace(record[valueIdx])
		if missingTokens[strings.ToLower(cell)] {
			values = append(values, math.NaN())
		} else {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parse value %q: %w", cell, err)
			}
			values = append(values, v)
		}

		if dateIdx >= 0 && dateIdx < len(record) {
			ts, err := time.Parse(opts.DateFormat, strings.TrimSpace(record[dateIdx]))
			if err != nil {
				return nil, fmt.Errorf("parse date %q: %w", record[dateIdx], err)
			}
			timestamps = append(timestamps, ts)
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no data rows found")
	}
	if len(timestamps) == len(values) {
		return NewWithTimestamps(timestamps, values)
	}
	return New(values), nil
}
