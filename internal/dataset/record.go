// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"sort"
)

// Columns are the cache table columns, in order.
var Columns = []string{"cpi", "year", "month"}

// Record is a single CPI observation.
type Record struct {
	Year  int     `json:"year" yaml:"year"`
	Month int     `json:"month" yaml:"month"`
	CPI   float64 `json:"cpi" yaml:"cpi"`
}

// Period returns the record's period in YYYY-MM form.
func (r Record) Period() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// SortRecords orders records by year then month.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		return records[i].Month < records[j].Month
	})
}
