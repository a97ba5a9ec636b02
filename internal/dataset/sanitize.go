// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"

	"github.com/staranto/cpictl/internal/source"
)

// Opener opens a raw source for reading. *source.Opener satisfies it.
type Opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type options struct {
	opener   Opener
	progress io.Writer
}

// Option customizes how sources are opened.
type Option func(*options)

// WithOpener sets the opener used for raw sources. Defaults to
// source.Default, which handles local paths and s3:// URIs.
func WithOpener(o Opener) Option {
	return func(opts *options) { opts.opener = o }
}

// WithProgress writes the GetDataset progress messages to w as well as
// logging them. A nil w only logs.
func WithProgress(w io.Writer) Option {
	return func(opts *options) { opts.progress = w }
}

// report logs msg at Info and copies it to the progress writer, if any.
func (o options) report(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Info(msg)
	if o.progress != nil {
		fmt.Fprintln(o.progress, msg)
	}
}

func buildOptions(opts []Option) options {
	o := options{opener: source.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Sanitize reshapes the raw source named by settings.FilePath into
// long-format records and writes them to the country's cache file in
// dataDir. The records written are returned.
func Sanitize(ctx context.Context, dataDir string, settings Settings, opts ...Option) ([]Record, error) {
	s := settings.withDefaults()
	o := buildOptions(opts)

	records, err := load(ctx, o.opener, s)
	if err != nil {
		return nil, err
	}

	path := CachePath(dataDir, s.CountryName)
	if err := WriteCache(ctx, path, s, records); err != nil {
		return nil, fmt.Errorf("failed to write cache for %s: %w", s.CountryName, err)
	}
	log.Debugf("wrote %d records to %s", len(records), path)

	return records, nil
}

// LoadRaw reshapes the raw source without touching the cache.
func LoadRaw(ctx context.Context, settings Settings, opts ...Option) ([]Record, error) {
	return load(ctx, buildOptions(opts).opener, settings.withDefaults())
}

func load(ctx context.Context, opener Opener, s Settings) ([]Record, error) {
	rc, err := opener.Open(ctx, s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer rc.Close()

	records, err := Reshape(rc, s)
	if err != nil {
		return nil, fmt.Errorf("failed to sanitize %s: %w", s.FilePath, err)
	}
	return records, nil
}

// GetDataset returns the records for the selection in settings. When
// settings.FilePath is not a cache file the raw source is sanitized first;
// either way the result is read from the cache.
func GetDataset(ctx context.Context, dataDir string, settings Settings, opts ...Option) ([]Record, error) {
	s := settings.withDefaults()
	o := buildOptions(opts)

	o.report("Reading from %s ...", s.FilePath)

	if !IsCachePath(s.FilePath) {
		if _, err := Sanitize(ctx, dataDir, s, opts...); err != nil {
			return nil, err
		}
	}

	records, err := ReadCache(CachePath(dataDir, s.CountryName))
	if err != nil {
		return nil, err
	}

	o.report("Done!")
	return records, nil
}
