package frame

import (
	"lake-demo/internal/domain"
)

// Aggregation ops supported by GroupBy.
const (
	AggCount         = "count"
	AggSum           = "sum"
	AggMean          = "mean"
	AggMin           = "min"
	AggMax           = "max"
	AggCountDistinct = "count_distinct"
)

// Aggregation describes one aggregated output column.
type Aggregation struct {
	Column string // input column (ignored for count)
	Op     string
	As     string // output column name
}

// Agg is shorthand for constructing an Aggregation.
func Agg(column, op, as string) Aggregation {
	return Aggregation{Column: column, Op: op, As: as}
}

type groupAcc struct {
	key      []any
	count    int64
	sum      []float64
	min      []any
	max      []any
	distinct []map[string]struct{}
}

// GroupBy groups rows by the key columns and computes the aggregations,
// returning one row per distinct key in order of first appearance.
func (f *Frame) GroupBy(keys []string, aggs ...Aggregation) (*Frame, error) {
	keyIdx := make([]int, len(keys))
	for i, k := range keys {
		j, ok := f.index[k]
		if !ok {
			return nil, domain.ErrNotFound("column %q not found", k)
		}
		keyIdx[i] = j
	}
	aggIdx := make([]int, len(aggs))
	for i, a := range aggs {
		switch a.Op {
		case AggCount:
			aggIdx[i] = -1
		case AggSum, AggMean, AggMin, AggMax, AggCountDistinct:
			j, ok := f.index[a.Column]
			if !ok {
				return nil, domain.ErrNotFound("column %q not found", a.Column)
			}
			aggIdx[i] = j
		default:
			return nil, domain.ErrValidation("unsupported aggregation %q", a.Op)
		}
	}

	groups := make(map[string]*groupAcc)
	var order []string
	for _, row := range f.rows {
		kb := make([]byte, 0, 32)
		keyVals := make([]any, len(keyIdx))
		for i, j := range keyIdx {
			keyVals[i] = row[j]
			kb = append(kb, formatValue(row[j])...)
			kb = append(kb, 0x1f)
		}
		k := string(kb)
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{
				key:      keyVals,
				sum:      make([]float64, len(aggs)),
				min:      make([]any, len(aggs)),
				max:      make([]any, len(aggs)),
				distinct: make([]map[string]struct{}, len(aggs)),
			}
			groups[k] = acc
			order = append(order, k)
		}
		acc.count++
		for i, a := range aggs {
			if aggIdx[i] < 0 {
				continue
			}
			v := row[aggIdx[i]]
			switch a.Op {
			case AggSum, AggMean:
				if x, ok := asFloat(v); ok {
					acc.sum[i] += x
				}
			case AggMin:
				if acc.min[i] == nil || compareValues(v, acc.min[i]) < 0 {
					acc.min[i] = v
				}
			case AggMax:
				if acc.max[i] == nil || compareValues(v, acc.max[i]) > 0 {
					acc.max[i] = v
				}
			case AggCountDistinct:
				if acc.distinct[i] == nil {
					acc.distinct[i] = make(map[string]struct{})
				}
				acc.distinct[i][formatValue(v)] = struct{}{}
			}
		}
	}

	cols := append([]string(nil), keys...)
	for _, a := range aggs {
		cols = append(cols, a.As)
	}
	out := New(cols...)
	for _, k := range order {
		acc := groups[k]
		vals := append([]any(nil), acc.key...)
		for i, a := range aggs {
			switch a.Op {
			case AggCount:
				vals = append(vals, acc.count)
			case AggSum:
				vals = append(vals, acc.sum[i])
			case AggMean:
				vals = append(vals, acc.sum[i]/float64(acc.count))
			case AggMin:
				vals = append(vals, acc.min[i])
			case AggMax:
				vals = append(vals, acc.max[i])
			case AggCountDistinct:
				vals = append(vals, int64(len(acc.distinct[i])))
			}
		}
		out.rows = append(out.rows, vals)
	}
	return out, nil
}
