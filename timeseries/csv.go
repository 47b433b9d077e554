package timeseries

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (default: first of ds/date/Date/Month)
	ValueColumn string // Column name for values (default: last column)
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has a header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a time series from a CSV file. Empty, "NA", "NaN" and "null"
// values become missing observations; the row keeps its place in the
// timeline.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader.
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
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case opts.ValueColumn != "" && h == opts.ValueColumn:
				valueIdx = i
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case h == "ds" || h == "date" || h == "Date" || h == "Month" || h == "month":
				if dateIdx == -1 && opts.DateColumn == "" {
					dateIdx = i
				}
			}
		}
		if valueIdx == -1 {
			valueIdx = len(header) - 1
		}
	} else {
		dateIdx = 0
		valueIdx = 1
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
			continue
		}

		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		if isMissingMarker(valStr) {
			values = append(values, Missing)
		} else {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				values = append(values, Missing)
			} else {
				values = append(values, val)
			}
		}

		if dateIdx >= 0 && dateIdx < len(record) {
			dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
			if ts, ok := parseDate(dateStr, opts.DateFormat); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, &InvalidInputError{Op: "LoadCSV", Reason: "no data rows found"}
	}

	if len(timestamps) == len(values) {
		return &Series{Timestamps: timestamps, Values: values}, nil
	}
	return New(values), nil
}

func isMissingMarker(s string) bool {
	switch s {
	case "", "NA", "NaN", "null":
		return true
	}
	return false
}

func parseDate(s, preferred string) (time.Time, bool) {
	formats := []string{
		preferred,
		"2006-01-02",
		"2006-01",
		"2006/01/02",
		"01/2006",
		"Jan 2006",
	}
	for _, f := range formats {
		if ts, err := time.Parse(f, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// SaveCSV saves a time series to a CSV file with ds,y columns. Missing
// observations are written as NA.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	writer.WriteString("ds,y\n")
	for i, v := range series.Values {
		if len(series.Timestamps) == len(series.Values) {
			writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
		} else {
			writer.WriteString(strconv.Itoa(i + 1))
		}
		writer.WriteString(",")
		if series.IsMissing(i) {
			writer.WriteString("NA")
		} else {
			writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return nil
}
