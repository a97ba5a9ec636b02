// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import "errors"

// Sentinel errors for inspection with errors.Is. Callers receive them wrapped
// with the offending column, label or selection.
var (
	// ErrMissingColumn is returned when the source table lacks one of the
	// identifying columns.
	ErrMissingColumn = errors.New("missing column")

	// ErrPeriodLabel is returned for a monthly period label whose month is not
	// in 1..12.
	ErrPeriodLabel = errors.New("malformed period label")

	// ErrValue is returned when a non-blank period cell is not a number.
	ErrValue = errors.New("malformed cpi value")

	// ErrDuplicatePeriod is returned when two columns resolve to the same
	// year and month.
	ErrDuplicatePeriod = errors.New("duplicate period")

	// ErrNoMatch is returned when no row matches the country, indicator and
	// attribute selection.
	ErrNoMatch = errors.New("no matching row")

	// ErrAmbiguousMatch is returned when more than one row matches the
	// selection.
	ErrAmbiguousMatch = errors.New("more than one matching row")
)
