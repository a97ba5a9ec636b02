// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

const (
	DefaultCountry   = "United Kingdom"
	DefaultIndicator = "PCPI_IX"
	DefaultAttribute = "Value"
	DefaultFallback  = "CPITimeSeries"
	DefaultFirstYear = 1990
	DefaultLastYear  = 2022
)

// Settings selects the row to extract from the source table and names the
// file it comes from.
type Settings struct {
	// FilePath is the resolved source, either a cache file or the raw CSV.
	FilePath    string
	CountryName string
	Indicator   string
	// Attribute is the value of the Attribute column to match. Only "Value"
	// rows carry index levels in the IMF tables.
	Attribute string
	// FirstYear and LastYear bound, inclusively, the period columns kept.
	FirstYear int
	LastYear  int
}

// withDefaults returns a copy of s with zero fields filled in.
func (s Settings) withDefaults() Settings {
	if s.CountryName == "" {
		s.CountryName = DefaultCountry
	}
	if s.Indicator == "" {
		s.Indicator = DefaultIndicator
	}
	if s.Attribute == "" {
		s.Attribute = DefaultAttribute
	}
	if s.FirstYear == 0 {
		s.FirstYear = DefaultFirstYear
	}
	if s.LastYear == 0 {
		s.LastYear = DefaultLastYear
	}
	return s
}
