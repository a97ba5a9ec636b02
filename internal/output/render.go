// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cpictl/internal/attrs"
	"github.com/staranto/cpictl/internal/config"
	"github.com/staranto/cpictl/internal/dataset"
)

// Formats are the accepted --output values.
var Formats = []string{"text", "json", "yaml", "csv", "raw"}

// Options controls how records are rendered.
type Options struct {
	Format string
	Titles bool
	Color  bool
	// Sort is a comma-separated list of keys, each optionally prefixed with
	// '-' for descending order.
	Sort string
	// Attrs adjusts the columns of text and csv output, see attrs.AttrList.
	Attrs string
}

// Render writes records to w in the requested format.
func Render(records []dataset.Record, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	SortRecords(records, opts.Sort)

	switch opts.Format {
	case "json":
		b, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "csv":
		return CSVWriter(records, opts.Attrs, w)
	case "raw":
		// One JSON document per line.
		enc := json.NewEncoder(w)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("failed to marshal record %s: %w", r.Period(), err)
			}
		}
		return nil
	default:
		return TableWriter(records, opts, w)
	}
}

// CSVWriter writes records with a header row. The columns default to the
// cache column order; spec adjusts them like --attrs.
func CSVWriter(records []dataset.Record, spec string, w io.Writer) error {
	al := attrs.Defaults(dataset.Columns...)
	if err := al.Set(spec); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(al.Titles()); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(al.Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TableWriter renders records in a tabular form honoring color, titles and
// padding options. The columns default to year, month and cpi; opts.Attrs
// adjusts them.
func TableWriter(records []dataset.Record, opts Options, w io.Writer) error {
	al := attrs.Defaults("year", "month", "cpi")
	if err := al.Set(opts.Attrs); err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color && isTerminal(w) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, al.Row(r))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(al.Titles()...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
	return nil
}

// SortRecords orders records by the keys in spec. An empty spec keeps the
// incoming order. Unknown keys are logged and ignored.
func SortRecords(records []dataset.Record, spec string) {
	if spec == "" {
		return
	}

	type key struct {
		name string
		desc bool
	}

	var keys []key
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		desc := strings.HasPrefix(k, "-")
		k = strings.TrimPrefix(k, "-")
		switch k {
		case "year", "month", "cpi", "period":
			keys = append(keys, key{name: k, desc: desc})
		default:
			log.Errorf("invalid sort key: %s", k)
		}
	}

	compare := func(a, b dataset.Record, name string) int {
		switch name {
		case "year":
			return a.Year - b.Year
		case "month":
			return a.Month - b.Month
		case "cpi":
			switch {
			case a.CPI < b.CPI:
				return -1
			case a.CPI > b.CPI:
				return 1
			}
			return 0
		default:
			return strings.Compare(a.Period(), b.Period())
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		for _, k := range keys {
			c := compare(records[i], records[j], k.name)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// DumpSchema prints the attribute names of typ taken from its json tags.
func DumpSchema(w io.Writer, typ reflect.Type) {
	if typ.Kind() != reflect.Struct {
		log.Debugf("not a struct: %s", typ)
		return
	}

	var names []string
	for i := 0; i < typ.NumField(); i++ {
		tag, ok := typ.Field(i).Tag.Lookup("json")
		if !ok || tag == "-" {
			continue
		}
		names = append(names, strings.Split(tag, ",")[0])
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// isTerminal reports whether w is a terminal. Color is dropped otherwise so
// piped output stays clean.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
