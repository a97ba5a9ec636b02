// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// WarmResult describes one cache written by Warm.
type WarmResult struct {
	Country string
	Path    string
	Records int
}

// Warm reads the raw source once and writes a cache for each of countries.
// The indicator, attribute and year bounds come from settings. At most limit
// caches are written at a time; limit <= 0 means no limit. Results are in the
// order of countries.
func Warm(
	ctx context.Context,
	dataDir string,
	settings Settings,
	countries []string,
	limit int,
	opts ...Option,
) ([]WarmResult, error) {
	s := settings.withDefaults()
	o := buildOptions(opts)

	rc, err := o.opener.Open(ctx, s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	t, err := LoadTable(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to sanitize %s: %w", s.FilePath, err)
	}

	// Extraction reads the shared table, so it stays on this goroutine. Only
	// the cache writes fan out.
	extracted := make([][]Record, len(countries))
	for i, country := range countries {
		cs := s
		cs.CountryName = country
		records, err := t.Extract(cs)
		if err != nil {
			return nil, fmt.Errorf("failed to sanitize %s: %w", country, err)
		}
		extracted[i] = records
	}

	results := make([]WarmResult, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, country := range countries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cs := s
			cs.CountryName = country
			path := CachePath(dataDir, country)
			if err := WriteCache(gctx, path, cs, extracted[i]); err != nil {
				return fmt.Errorf("failed to write cache for %s: %w", country, err)
			}
			log.Debugf("warmed %s with %d records", path, len(extracted[i]))
			results[i] = WarmResult{Country: country, Path: path, Records: len(extracted[i])}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
