// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"slices"

	"github.com/staranto/cpictl/internal/cacheutil"
)

const cacheVersion = 1

// ErrCacheSchema is returned when a cache file decodes but does not carry the
// expected version or columns.
var ErrCacheSchema = errors.New("unexpected cache schema")

// cacheTable is the gob payload of a cache file.
type cacheTable struct {
	Version   int
	Columns   []string
	Country   string
	Indicator string
	Records   []Record
}

// WriteCache serializes records for the selection in s to path.
func WriteCache(ctx context.Context, path string, s Settings, records []Record) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cacheTable{
		Version:   cacheVersion,
		Columns:   Columns,
		Country:   s.CountryName,
		Indicator: s.Indicator,
		Records:   records,
	}); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	return cacheutil.WriteFile(ctx, path, buf.Bytes())
}

// ReadCache loads the records stored at path.
func ReadCache(path string) ([]Record, error) {
	data, err := cacheutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t cacheTable
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode cache %s: %w", path, err)
	}

	if t.Version != cacheVersion || !slices.Equal(t.Columns, Columns) {
		return nil, fmt.Errorf("%w: version %d columns %v in %s", ErrCacheSchema, t.Version, t.Columns, path)
	}

	return t.Records, nil
}
