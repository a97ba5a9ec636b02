// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/cpictl/internal/dataset"
)

// filterRegex is the pattern used to parse filter expressions into key, operator, and target components.
// It matches: key + operator + target, where operator can be negated with !
// Operators are one of = ^ ~ < > @ or /, optionally prefixed with '!'.
// This allows forms like '=', '!=', '^', '!^', etc.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Keys are the record attributes a filter may name.
var Keys = []string{"year", "month", "cpi", "period"}

// Filter represents a single parsed --filter expression including the key,
// operand, optional negation and target value.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unsupported operand or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv("CPICTL_FILTER_DELIM"); ok {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)

		// If a supported operand was not found, log an error and throw it away.
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		// parts[2] is the operand. It may have a leading negation. If so, trim it
		// and just use the remainder as the working operand.
		negate := strings.HasPrefix(parts[2], "!")
		if negate {
			parts[2] = strings.TrimPrefix(parts[2], "!")
		}

		filters = append(filters, Filter{
			Key:     strings.TrimSpace(parts[1]),
			Negate:  negate,
			Operand: parts[2],
			Target:  parts[3],
		})
	}

	return filters
}

// row is the JSON projection of a record the filters are evaluated against.
type row struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	CPI    float64 `json:"cpi"`
	Period string  `json:"period"`
}

// FilterRecords returns the records that match every filter in spec, in
// their original order.
func FilterRecords(records []dataset.Record, spec string) ([]dataset.Record, error) {
	filters := validFilters(BuildFilters(spec))
	if len(filters) == 0 {
		return records, nil
	}

	//nolint:prealloc // Don't prealloc because we don't know what len will be.
	var filtered []dataset.Record
	for _, r := range records {
		raw, err := json.Marshal(row{Year: r.Year, Month: r.Month, CPI: r.CPI, Period: r.Period()})
		if err != nil {
			return nil, fmt.Errorf("failed to project record %s: %w", r.Period(), err)
		}
		if applyFilters(gjson.ParseBytes(raw), filters) {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}

// validFilters drops filters naming an unknown key. Each one is reported.
func validFilters(filters []Filter) []Filter {
	var valid []Filter
	for _, f := range filters {
		known := false
		for _, k := range Keys {
			if k == f.Key {
				known = true
				break
			}
		}
		if !known {
			msg := fmt.Sprintf("filter key not found: %s", f.Key)
			log.Error(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}
		valid = append(valid, f)
	}
	return valid
}

// applyFilters returns true if the candidate row matches all of the provided
// filters.
func applyFilters(candidate gjson.Result, filters []Filter) bool {
	for _, filter := range filters {
		value := candidate.Get(filter.Key)
		if !value.Exists() {
			return false
		}

		var result bool
		switch value.Type {
		case gjson.Number:
			result = checkNumericOperand(value.Float(), filter)
		default:
			result = checkStringOperand(value.String(), filter)
		}

		if !result {
			return false
		}
	}

	return true
}

// checkNumericOperand compares a numeric value against the filter target using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "="). Other operands
// fall back to comparing the value's text.
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=", ">", "<":
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		log.Error("invalid numeric target: " + filter.Target)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	default:
		return (value < tgt) == !filter.Negate
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">":
		return value > filter.Target == !filter.Negate
	case "<":
		return value < filter.Target == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
