// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cpictl/internal/cacheutil"
)

// countingOpener opens local files and counts how often it was asked to.
type countingOpener struct {
	calls int
}

func (c *countingOpener) Open(_ context.Context, path string) (io.ReadCloser, error) {
	c.calls++
	return os.Open(path)
}

func copyFixture(t *testing.T, dataDir string) {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", "CPITimeSeries.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "CPITimeSeries.csv"), b, 0o600))
}

func TestSanitize_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir)

	s := Settings{FilePath: ResolveSource(dir, "United Kingdom", DefaultFallback)}
	written, err := Sanitize(context.Background(), dir, s)
	require.NoError(t, err)
	require.NotEmpty(t, written)

	read, err := ReadCache(CachePath(dir, "United Kingdom"))
	require.NoError(t, err)
	assert.Equal(t, written, read)

	direct, err := Reshape(openFixture(t), Settings{})
	require.NoError(t, err)
	assert.ElementsMatch(t, direct, read)
}

func TestGetDataset_BuildsThenReusesCache(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir)
	ctx := context.Background()
	opener := &countingOpener{}

	s := Settings{FilePath: ResolveSource(dir, "United Kingdom", DefaultFallback), Indicator: "PCPI_IX"}
	assert.False(t, IsCachePath(s.FilePath))

	first, err := GetDataset(ctx, dir, s, WithOpener(opener))
	require.NoError(t, err)
	assert.Equal(t, 1, opener.calls)
	assert.Contains(t, first, Record{Year: 2020, Month: 1, CPI: 100.0})
	assert.FileExists(t, CachePath(dir, "United Kingdom"))

	// Second run resolves to the cache and never opens the CSV.
	s.FilePath = ResolveSource(dir, "United Kingdom", DefaultFallback)
	assert.True(t, IsCachePath(s.FilePath))

	second, err := GetDataset(ctx, dir, s, WithOpener(opener))
	require.NoError(t, err)
	assert.Equal(t, 1, opener.calls)
	assert.Equal(t, first, second)
}

func TestGetDataset_Progress(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir)
	src := ResolveSource(dir, "United Kingdom", DefaultFallback)

	var progress bytes.Buffer
	_, err := GetDataset(context.Background(), dir, Settings{FilePath: src}, WithProgress(&progress))
	require.NoError(t, err)
	assert.Equal(t, "Reading from "+src+" ...\nDone!\n", progress.String())

	// Nothing is reported for a failed read.
	progress.Reset()
	_, err = GetDataset(context.Background(), dir, Settings{FilePath: src, CountryName: "Atlantis"}, WithProgress(&progress))
	require.Error(t, err)
	assert.Equal(t, "Reading from "+src+" ...\n", progress.String())
}

func TestGetDataset_MissingSource(t *testing.T) {
	dir := t.TempDir()
	s := Settings{FilePath: ResolveSource(dir, "United Kingdom", DefaultFallback)}

	_, err := GetDataset(context.Background(), dir, s)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, CachePath(dir, "United Kingdom"))
}

func TestGetDataset_CorruptCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(CachePath(dir, "United Kingdom"), []byte("not a cache"), 0o600))

	s := Settings{FilePath: ResolveSource(dir, "United Kingdom", DefaultFallback)}
	_, err := GetDataset(context.Background(), dir, s)
	assert.ErrorIs(t, err, cacheutil.ErrCorrupt)
}

func TestReadCache_Schema(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "United Kingdom.pkl")

	// A valid cache frame around something that is not a cache table.
	require.NoError(t, cacheutil.WriteFile(context.Background(), p, []byte{0x01, 0x02}))
	_, err := ReadCache(p)
	assert.Error(t, err)
}

func TestSanitize_PropagatesReshapeErrors(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir)

	s := Settings{FilePath: filepath.Join(dir, "CPITimeSeries.csv"), CountryName: "Atlantis"}
	_, err := Sanitize(context.Background(), dir, s)
	assert.True(t, errors.Is(err, ErrNoMatch))
	assert.NoFileExists(t, CachePath(dir, "Atlantis"))
}

func TestWarm(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir)
	opener := &countingOpener{}

	s := Settings{FilePath: filepath.Join(dir, "CPITimeSeries.csv")}
	results, err := Warm(context.Background(), dir, s, []string{"United Kingdom", "France"}, 1, WithOpener(opener))
	require.NoError(t, err)
	assert.Equal(t, 1, opener.calls, "source is read once")

	require.Len(t, results, 2)
	assert.Equal(t, "United Kingdom", results[0].Country)
	assert.Equal(t, 3, results[0].Records)
	assert.Equal(t, "France", results[1].Country)
	assert.Equal(t, 2, results[1].Records)

	fr, err := ReadCache(CachePath(dir, "France"))
	require.NoError(t, err)
	assert.Equal(t, []Record{{Year: 2019, Month: 12, CPI: 100.1}, {Year: 2020, Month: 1, CPI: 100.0}}, fr)
}

func TestWarm_UnknownCountryWritesNothing(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir)

	s := Settings{FilePath: filepath.Join(dir, "CPITimeSeries.csv")}
	_, err := Warm(context.Background(), dir, s, []string{"France", "Atlantis"}, 0)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.NoFileExists(t, CachePath(dir, "France"))
}
