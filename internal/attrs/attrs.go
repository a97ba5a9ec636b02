// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/staranto/cpictl/internal/dataset"
)

// Keys are the record attributes that can be selected for output.
var Keys = []string{"year", "month", "cpi", "period"}

// ErrUnknownKey is returned by Set for a key not in Keys.
var ErrUnknownKey = errors.New("unknown attribute")

// Attr represents each of the columns to be included in the output.
type Attr struct {
	// The record attribute to extract.
	Key string
	// Should this Attr be included in output or was it excluded with '!'?
	Include bool
	// The key to use in the output. This will also be used as the column title
	// when output=text.
	OutputKey string
}

// Value returns the text of the attribute for r.
func (a *Attr) Value(r dataset.Record) string {
	switch a.Key {
	case "year":
		return strconv.Itoa(r.Year)
	case "month":
		return strconv.Itoa(r.Month)
	case "cpi":
		return FormatCPI(r.CPI)
	default:
		return r.Period()
	}
}

// FormatCPI renders a cpi value with as few digits as round-trip.
func FormatCPI(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type AttrList []Attr

// Defaults returns an AttrList including keys in order.
func Defaults(keys ...string) AttrList {
	al := make(AttrList, 0, len(keys))
	for _, k := range keys {
		al = append(al, Attr{Key: k, Include: true, OutputKey: k})
	}
	return al
}

// Return a string representation of the AttrList.  This should match the format
// of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s", key, attr.OutputKey))
	}
	return strings.Join(result, ",")
}

// Parse each spec from the --attrs flag and add it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
	)

	// There are two : delimited fields in each spec.  The first is the record
	// attribute.  The second, optional, is the key to use in the output.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")

		// The first field is the attribute.  If it begins with a !, it is
		// excluded from the output.
		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}

		if !known(attr.Key) {
			return fmt.Errorf("%w: %q, must be one of %v", ErrUnknownKey, attr.Key, Keys)
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		// If the attr already exists in the list (because it's one of the defaults
		// for the format or the user double-entered it) just apply the OutputKey
		// and Include to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// Included returns the attrs that are not excluded, in order.
func (a AttrList) Included() AttrList {
	var result AttrList
	for _, attr := range a {
		if attr.Include {
			result = append(result, attr)
		}
	}
	return result
}

// Titles returns the output keys of the included attrs.
func (a AttrList) Titles() []string {
	var result []string
	for _, attr := range a.Included() {
		result = append(result, attr.OutputKey)
	}
	return result
}

// Row returns the included attribute values of r.
func (a AttrList) Row(r dataset.Record) []string {
	var result []string
	for _, attr := range a.Included() {
		result = append(result, attr.Value(r))
	}
	return result
}

func (a *AttrList) Type() string {
	return "list"
}

func known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
