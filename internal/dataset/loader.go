package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"VolLab/internal/model"
)

// timeLayouts are tried in order when parsing the Time column.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Load reads an OHLC CSV with header columns Time, Open, High, Low, Close.
// Rows must be sorted ascending by time with no duplicate timestamps.
func Load(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var bars []model.Bar
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		bar, err := parseBar(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if len(bars) > 0 && !bar.Time.After(bars[len(bars)-1].Time) {
			return nil, fmt.Errorf("row %d: timestamps must be strictly increasing", line)
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}
	return bars, nil
}

// LoadYear loads the CSV and keeps only bars from the given calendar year.
// year 0 disables the filter.
func LoadYear(path string, year int) ([]model.Bar, error) {
	bars, err := Load(path)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		return bars, nil
	}
	filtered := FilterYear(bars, year)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no bars in year %d", year)
	}
	return filtered, nil
}

// FilterYear returns the bars whose timestamp falls in the given calendar year.
func FilterYear(bars []model.Bar, year int) []model.Bar {
	var out []model.Bar
	for _, b := range bars {
		if b.Time.Year() == year {
			out = append(out, b)
		}
	}
	return out
}

type columns struct {
	time, open, high, low, close int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{time: -1, open: -1, high: -1, low: -1, close: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "time":
			cols.time = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "close":
			cols.close = i
		}
	}
	if cols.time < 0 || cols.open < 0 || cols.high < 0 || cols.low < 0 || cols.close < 0 {
		return cols, fmt.Errorf("header must contain Time, Open, High, Low, Close; got %v", header)
	}
	return cols, nil
}

func parseBar(record []string, cols columns) (model.Bar, error) {
	var bar model.Bar

	ts, err := parseTime(record[cols.time])
	if err != nil {
		return bar, err
	}
	bar.Time = ts

	fields := []struct {
		idx int
		dst *float64
	}{
		{cols.open, &bar.Open},
		{cols.high, &bar.High},
		{cols.low, &bar.Low},
		{cols.close, &bar.Close},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[f.idx]), 64)
		if err != nil {
			return bar, fmt.Errorf("parse price %q: %w", record[f.idx], err)
		}
		*f.dst = v
	}
	return bar, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
