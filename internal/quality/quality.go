// Package quality runs rule-driven data-quality checks over frames. Checks
// are in-memory only; persisting results is the governance store's job.
package quality

import (
	"fmt"
	"regexp"
	"time"

	"lake-demo/internal/domain"
	"lake-demo/internal/frame"
)

// Rules describes the checks to run against one dataset.
type Rules struct {
	NoNulls []string    // columns that must not contain nulls
	Unique  []string    // columns whose values must be unique
	Ranges  []RangeRule // numeric bounds per column
	Pattern []PatternRule
}

// RangeRule bounds a numeric column. Nil bounds are not checked.
type RangeRule struct {
	Column string
	Min    *float64
	Max    *float64
}

// PatternRule requires every value of a string column to match a regular
// expression.
type PatternRule struct {
	Column  string
	Pattern string
}

// Check runs the rules over the frame and returns one result per rule.
// Columns missing from the frame are skipped, matching the original
// behavior of checking only columns that exist.
func Check(f *frame.Frame, dataset string, rules Rules) domain.QualityResult {
	res := domain.QualityResult{
		Dataset:   dataset,
		Timestamp: time.Now(),
		RowCount:  f.NumRows(),
	}
	for _, col := range rules.NoNulls {
		if !f.HasColumn(col) {
			continue
		}
		nulls := 0
		for i := 0; i < f.NumRows(); i++ {
			if f.Value(i, col) == nil {
				nulls++
			}
		}
		res.Checks = append(res.Checks, domain.QualityCheck{
			Check:   "no_nulls",
			Column:  col,
			Passed:  nulls == 0,
			Details: fmt.Sprintf("%d null values found", nulls),
		})
	}
	for _, col := range rules.Unique {
		if !f.HasColumn(col) {
			continue
		}
		seen := make(map[string]struct{}, f.NumRows())
		dups := 0
		for i := 0; i < f.NumRows(); i++ {
			k := f.Row(i).String(col)
			if _, ok := seen[k]; ok {
				dups++
			}
			seen[k] = struct{}{}
		}
		res.Checks = append(res.Checks, domain.QualityCheck{
			Check:   "unique",
			Column:  col,
			Passed:  dups == 0,
			Details: fmt.Sprintf("%d duplicate values found", dups),
		})
	}
	for _, rule := range rules.Ranges {
		if !f.HasColumn(rule.Column) {
			continue
		}
		out := 0
		for i := 0; i < f.NumRows(); i++ {
			v := f.Row(i).Float(rule.Column)
			if (rule.Min != nil && v < *rule.Min) || (rule.Max != nil && v > *rule.Max) {
				out++
			}
		}
		res.Checks = append(res.Checks, domain.QualityCheck{
			Check:   "range",
			Column:  rule.Column,
			Passed:  out == 0,
			Details: fmt.Sprintf("%d values out of range", out),
		})
	}
	for _, rule := range rules.Pattern {
		if !f.HasColumn(rule.Column) {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			res.Checks = append(res.Checks, domain.QualityCheck{
				Check:   "pattern",
				Column:  rule.Column,
				Passed:  false,
				Details: fmt.Sprintf("invalid pattern: %v", err),
			})
			continue
		}
		mismatches := 0
		for i := 0; i < f.NumRows(); i++ {
			if !re.MatchString(f.Row(i).String(rule.Column)) {
				mismatches++
			}
		}
		res.Checks = append(res.Checks, domain.QualityCheck{
			Check:   "pattern",
			Column:  rule.Column,
			Passed:  mismatches == 0,
			Details: fmt.Sprintf("%d values do not match pattern", mismatches),
		})
	}
	return res
}
