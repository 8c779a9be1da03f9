package frame

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

func trimFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func encodeCSV(f *Frame) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(f.columns); err != nil {
		return nil, err
	}
	record := make([]string, len(f.columns))
	for _, row := range f.rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func decodeCSV(data []byte) (*Frame, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return New(), nil
	}
	f := New(records[0]...)
	raw := records[1:]

	// Per-column type inference over the whole column, pandas-style:
	// a column is int64 only if every non-empty cell parses as int64.
	parsers := make([]func(string) any, len(f.columns))
	for col := range f.columns {
		parsers[col] = inferColumn(raw, col)
	}
	for _, record := range raw {
		vals := make([]any, len(f.columns))
		for i, cell := range record {
			if cell == "" {
				vals[i] = nil
				continue
			}
			vals[i] = parsers[i](cell)
		}
		f.rows = append(f.rows, vals)
	}
	return f, nil
}

var timeLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

func inferColumn(records [][]string, col int) func(string) any {
	isInt, isFloat, isBool, isTime := true, true, true, true
	seen := false
	for _, rec := range records {
		cell := rec[col]
		if cell == "" {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isBool && cell != "true" && cell != "false" {
			isBool = false
		}
		if isTime && parseTime(cell) == nil {
			isTime = false
		}
	}
	switch {
	case !seen:
		return func(s string) any { return s }
	case isInt:
		return func(s string) any { v, _ := strconv.ParseInt(s, 10, 64); return v }
	case isFloat:
		return func(s string) any { v, _ := strconv.ParseFloat(s, 64); return v }
	case isBool:
		return func(s string) any { return s == "true" }
	case isTime:
		return func(s string) any {
			if t := parseTime(s); t != nil {
				return *t
			}
			return s
		}
	default:
		return func(s string) any { return s }
	}
}

func parseTime(s string) *time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
