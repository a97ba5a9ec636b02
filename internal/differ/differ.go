// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package differ compares two CPI record sets period by period.
package differ

import (
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/cpictl/internal/dataset"
)

// Result is the outcome of a comparison.
type Result struct {
	Modified bool
	// Delta is an ASCII rendering of the differences, empty when unmodified.
	Delta string
}

// Diff compares left against right keyed by YYYY-MM period.
func Diff(left, right []dataset.Record) (Result, error) {
	l := byPeriod(left)
	r := byPeriod(right)

	d := gojsondiff.New().CompareObjects(l, r)
	if !d.Modified() {
		return Result{}, nil
	}

	f := formatter.NewAsciiFormatter(l, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       false,
	})
	delta, err := f.Format(d)
	if err != nil {
		return Result{}, fmt.Errorf("failed to format diff: %w", err)
	}

	return Result{Modified: true, Delta: delta}, nil
}

// byPeriod maps YYYY-MM to cpi. Values are float64 so both sides compare the
// way decoded JSON would.
func byPeriod(records []dataset.Record) map[string]interface{} {
	m := make(map[string]interface{}, len(records))
	for _, rec := range records {
		m[rec.Period()] = rec.CPI
	}
	return m
}
