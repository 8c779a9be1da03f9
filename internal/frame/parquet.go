package frame

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"
)

// encodeParquet writes the frame with a dynamic schema derived from the
// column values. Every leaf is optional so nil cells round-trip as nulls.
// Column order is not preserved; parquet groups sort fields by name, and
// all downstream access is by column name.
func encodeParquet(f *Frame) ([]byte, error) {
	group := parquet.Group{}
	for i, col := range f.columns {
		group[col] = parquet.Optional(columnNode(f, i))
	}
	schema := parquet.NewSchema("frame", group)

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[map[string]any](&buf, schema)
	records := make([]map[string]any, 0, len(f.rows))
	for _, row := range f.rows {
		rec := make(map[string]any, len(f.columns))
		for i, col := range f.columns {
			switch v := row[i].(type) {
			case nil:
				// omitted: optional leaf reads back as null
			case time.Time:
				rec[col] = v.UnixMilli()
			default:
				rec[col] = v
			}
		}
		records = append(records, rec)
	}
	if _, err := w.Write(records); err != nil {
		return nil, fmt.Errorf("write parquet: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

// columnNode picks the parquet node for a column from its first non-nil
// value; an all-nil column falls back to string.
func columnNode(f *Frame, col int) parquet.Node {
	for _, row := range f.rows {
		switch row[col].(type) {
		case int64:
			return parquet.Int(64)
		case float64:
			return parquet.Leaf(parquet.DoubleType)
		case bool:
			return parquet.Leaf(parquet.BooleanType)
		case time.Time:
			return parquet.Timestamp(parquet.Millisecond)
		case string:
			return parquet.String()
		}
	}
	return parquet.String()
}

func decodeParquet(data []byte) (*Frame, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	schema := file.Schema()
	fields := schema.Fields()

	names := make([]string, len(fields))
	isTimestamp := make([]bool, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
		if lt := field.Type().LogicalType(); lt != nil && lt.Timestamp != nil {
			isTimestamp[i] = true
		}
	}

	f := New(names...)
	buf := make([]parquet.Row, 128)
	for _, rg := range file.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				vals := make([]any, len(names))
				for _, v := range row {
					vals[v.Column()] = decodeValue(v, isTimestamp[v.Column()])
				}
				f.rows = append(f.rows, vals)
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("close parquet rows: %w", err)
		}
	}
	return f, nil
}

func decodeValue(v parquet.Value, timestamp bool) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		if timestamp {
			return time.UnixMilli(v.Int64()).UTC()
		}
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return v.String()
	}
}
