// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"regexp"
	"strconv"
)

// periodRegex matches monthly period labels such as 2020M01 or 2020M1.
var periodRegex = regexp.MustCompile(`^(\d{4})M(\d{1,2})$`)

// ParsePeriod splits a YYYYMmm period label into year and month. ok is false
// for labels that are not monthly periods at all (annual, quarterly, or
// descriptive columns), which callers skip. A monthly label with an
// out-of-range month is an error.
func ParsePeriod(label string) (year int, month int, ok bool, err error) {
	parts := periodRegex.FindStringSubmatch(label)
	if parts == nil {
		return 0, 0, false, nil
	}

	// The regex guarantees digits, so Atoi cannot fail here.
	year, _ = strconv.Atoi(parts[1])
	month, _ = strconv.Atoi(parts[2])

	if month < 1 || month > 12 {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrPeriodLabel, label)
	}

	return year, month, true, nil
}
