// Package frame provides the in-memory tabular structure moved between
// zones, together with the column operations the zone transforms need and
// CSV/Parquet codecs. Values are dynamically typed per cell: string, int64,
// float64, bool, time.Time, or nil.
package frame

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lake-demo/internal/domain"
)

// Frame is an ordered set of named columns over row-major data.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates an empty frame with the given column names.
func New(columns ...string) *Frame {
	f := &Frame{columns: append([]string(nil), columns...)}
	f.reindex()
	return f
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.columns))
	for i, c := range f.columns {
		f.index[c] = i
	}
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string { return append([]string(nil), f.columns...) }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return len(f.rows) }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.columns) }

// HasColumn reports whether the frame has a column with the given name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Append adds one row. The number of values must match the column count.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.columns) {
		return domain.ErrValidation("row has %d values, frame has %d columns", len(values), len(f.columns))
	}
	f.rows = append(f.rows, values)
	return nil
}

// Value returns the cell at the given row for the named column, or nil when
// the column does not exist.
func (f *Frame) Value(row int, col string) any {
	i, ok := f.index[col]
	if !ok {
		return nil
	}
	return f.rows[row][i]
}

// Row returns an accessor for the i-th row.
func (f *Frame) Row(i int) Row { return Row{f: f, idx: i} }

// Row provides typed access to the cells of a single row.
type Row struct {
	f   *Frame
	idx int
}

// Value returns the raw cell value for the named column.
func (r Row) Value(col string) any { return r.f.Value(r.idx, col) }

// String returns the cell as a string, formatting non-string values.
func (r Row) String(col string) string {
	v := r.Value(col)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return formatValue(v)
}

// Int returns the cell as int64, coercing float64 values.
func (r Row) Int(col string) int64 {
	switch v := r.Value(col).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Float returns the cell as float64, coercing int64 values.
func (r Row) Float(col string) float64 {
	switch v := r.Value(col).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// Bool returns the cell as bool.
func (r Row) Bool(col string) bool {
	v, _ := r.Value(col).(bool)
	return v
}

// Time returns the cell as time.Time.
func (r Row) Time(col string) time.Time {
	v, _ := r.Value(col).(time.Time)
	return v
}

// AddColumn appends a derived column computed per row.
func (f *Frame) AddColumn(name string, fn func(Row) any) error {
	if f.HasColumn(name) {
		return domain.ErrValidation("column %q already exists", name)
	}
	for i := range f.rows {
		f.rows[i] = append(f.rows[i], fn(Row{f: f, idx: i}))
	}
	f.columns = append(f.columns, name)
	f.reindex()
	return nil
}

// MapColumn replaces every value of a column through fn.
func (f *Frame) MapColumn(name string, fn func(any) any) error {
	i, ok := f.index[name]
	if !ok {
		return domain.ErrNotFound("column %q not found", name)
	}
	for _, row := range f.rows {
		row[i] = fn(row[i])
	}
	return nil
}

// Rename changes a column name in place.
func (f *Frame) Rename(old, new string) error {
	i, ok := f.index[old]
	if !ok {
		return domain.ErrNotFound("column %q not found", old)
	}
	f.columns[i] = new
	f.reindex()
	return nil
}

// Select returns a new frame holding only the given columns, in the given
// order.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := f.index[c]
		if !ok {
			return nil, domain.ErrNotFound("column %q not found", c)
		}
		idx[i] = j
	}
	out := New(cols...)
	for _, row := range f.rows {
		vals := make([]any, len(idx))
		for i, j := range idx {
			vals[i] = row[j]
		}
		out.rows = append(out.rows, vals)
	}
	return out, nil
}

// LeftJoin joins other onto f by equality on the key column, bringing the
// named columns from other. Unmatched rows keep nil for the joined columns.
// When other has multiple rows per key, the first wins.
func (f *Frame) LeftJoin(other *Frame, on string, cols ...string) (*Frame, error) {
	return f.join(other, on, cols, true)
}

// InnerJoin joins other onto f by equality on the key column, dropping rows
// of f without a match.
func (f *Frame) InnerJoin(other *Frame, on string, cols ...string) (*Frame, error) {
	return f.join(other, on, cols, false)
}

func (f *Frame) join(other *Frame, on string, cols []string, keepUnmatched bool) (*Frame, error) {
	if !f.HasColumn(on) || !other.HasColumn(on) {
		return nil, domain.ErrNotFound("join column %q not found on both frames", on)
	}
	colIdx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := other.index[c]
		if !ok {
			return nil, domain.ErrNotFound("column %q not found", c)
		}
		colIdx[i] = j
	}
	lookup := make(map[string][]any, other.NumRows())
	oi := other.index[on]
	for _, row := range other.rows {
		k := formatValue(row[oi])
		if _, seen := lookup[k]; !seen {
			lookup[k] = row
		}
	}
	out := New(append(f.Columns(), cols...)...)
	fi := f.index[on]
	for _, row := range f.rows {
		match, ok := lookup[formatValue(row[fi])]
		if !ok && !keepUnmatched {
			continue
		}
		vals := make([]any, 0, len(f.columns)+len(cols))
		vals = append(vals, row...)
		for _, j := range colIdx {
			if ok {
				vals = append(vals, match[j])
			} else {
				vals = append(vals, nil)
			}
		}
		out.rows = append(out.rows, vals)
	}
	return out, nil
}

// SortBy sorts rows ascending by the given columns, in order of precedence.
// The sort is stable.
func (f *Frame) SortBy(cols ...string) error {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := f.index[c]
		if !ok {
			return domain.ErrNotFound("column %q not found", c)
		}
		idx[i] = j
	}
	sort.SliceStable(f.rows, func(a, b int) bool {
		for _, j := range idx {
			if c := compareValues(f.rows[a][j], f.rows[b][j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}

// compareValues orders nil first, then numbers, times, bools, and strings.
// Mixed int64/float64 cells compare numerically.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	at, aOK := a.(time.Time)
	bt, bOK := b.(time.Time)
	if aOK && bOK {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(formatValue(a), formatValue(b))
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// formatValue renders a cell the same way the CSV codec does, which also
// serves as the hash key for joins and grouping.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return fmt.Sprintf("%d", x)
	case float64:
		return trimFloat(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}
