// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "yaml", "csv", "raw"} {
		assert.NoError(t, OutputValidator(v), v)
	}
	assert.Error(t, OutputValidator("xml"))
	assert.Error(t, OutputValidator(""))
}

func TestFlagValidators(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"plain", "data", false},
		{"jammed", "--output", true},
		{"empty", "", true},
		{"blank", "  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, JammedFlagValidator, NonEmptyValidator)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestYearValidator(t *testing.T) {
	assert.NoError(t, YearValidator(1990))
	assert.Error(t, YearValidator(0))
	assert.Error(t, YearValidator(10000))
}
