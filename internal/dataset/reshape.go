// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Identifying columns of the wide source table. All of them must be present;
// none of them survive into the long form.
const (
	ColCountryName   = "Country Name"
	ColCountryCode   = "Country Code"
	ColIndicatorCode = "Indicator Code"
	ColAttribute     = "Attribute"
)

var idColumns = []string{ColCountryName, ColCountryCode, ColIndicatorCode, ColAttribute}

// Table is the wide source table, one row per (country, indicator,
// attribute) and one column per period.
type Table struct {
	df    dataframe.DataFrame
	names []string
	index map[string]int
}

// LoadTable reads a wide CSV table with a single header row. Cells are kept
// as strings and coerced when a row is extracted. A leading UTF-8 BOM is
// dropped. A table with a header and no rows loads and matches nothing.
func LoadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMissingColumn)
	}

	// gota renames repeated headers, so duplicates are caught on the raw row.
	header := records[0]
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	t := &Table{
		names: header,
		index: make(map[string]int),
	}
	for i, name := range t.names {
		t.index[name] = i
	}

	for _, col := range idColumns {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	if len(records) == 1 {
		log.Debug("table has no rows")
		return t, nil
	}

	t.df = dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if t.df.Err != nil {
		return nil, fmt.Errorf("failed to read table: %w", t.df.Err)
	}

	log.Debugf("loaded table with %d rows and %d columns", t.df.Nrow(), t.df.Ncol())
	return t, nil
}

// checkHeader rejects a header naming the same period twice, either verbatim
// or in two spellings such as 2020M1 and 2020M01.
func checkHeader(header []string) error {
	seen := make(map[[2]int]string)
	for _, name := range header {
		year, month, ok, err := ParsePeriod(name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		key := [2]int{year, month}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q and %q", ErrDuplicatePeriod, prev, name)
		}
		seen[key] = name
	}
	return nil
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int {
	return t.df.Nrow()
}

// Extract selects the single row matching the country, indicator and
// attribute in s and pivots its period columns into records ordered by year
// and month.
func (t *Table) Extract(settings Settings) ([]Record, error) {
	s := settings.withDefaults()

	row, err := t.match(s)
	if err != nil {
		return nil, err
	}

	// Don't prealloc, blank cells and out-of-range years are dropped.
	//nolint:prealloc
	var records []Record

	for j, name := range t.names {
		if isIDColumn(name) {
			continue
		}

		year, month, ok, err := ParsePeriod(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Debugf("skipping non-period column %q", name)
			continue
		}
		if year < s.FirstYear || year > s.LastYear {
			continue
		}

		elem := t.df.Elem(row, j)
		if elem.IsNA() || isBlank(elem.String()) {
			continue
		}

		raw := strings.TrimSpace(elem.String())
		cpi, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q in column %q", ErrValue, raw, name)
		}

		records = append(records, Record{Year: year, Month: month, CPI: cpi})
	}

	SortRecords(records)
	return records, nil
}

// match returns the index of the only row matching s.
func (t *Table) match(s Settings) (int, error) {
	selection := fmt.Sprintf("country=%q indicator=%q attribute=%q",
		s.CountryName, s.Indicator, s.Attribute)

	if t.Rows() == 0 {
		return 0, fmt.Errorf("%w: %s in an empty table", ErrNoMatch, selection)
	}

	countries := t.df.Col(ColCountryName).Records()
	indicators := t.df.Col(ColIndicatorCode).Records()
	attributes := t.df.Col(ColAttribute).Records()

	var matches []int
	for i := range countries {
		if countries[i] == s.CountryName &&
			indicators[i] == s.Indicator &&
			attributes[i] == s.Attribute {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%w: %s", ErrNoMatch, selection)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%w: %s matched %d rows", ErrAmbiguousMatch, selection, len(matches))
	}
}

// Reshape reads a wide table from r and extracts the row selected by s.
func Reshape(r io.Reader, s Settings) ([]Record, error) {
	t, err := LoadTable(r)
	if err != nil {
		return nil, err
	}
	return t.Extract(s)
}

func isIDColumn(name string) bool {
	for _, c := range idColumns {
		if c == name {
			return true
		}
	}
	return false
}

// isBlank reports whether a cell carries no observation.
func isBlank(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NaN", "NA", "<nil>":
		return true
	}
	return false
}
