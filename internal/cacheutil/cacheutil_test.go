// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
		{"FALSE", false},
		{"False", false},
		{" f ", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("CPICTL_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "United Kingdom.pkl")
	data := bytes.Repeat([]byte("2020,1,100.0\n"), 64)

	require.NoError(t, WriteFile(context.Background(), p, data))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, Magic))
	assert.Less(t, len(raw), len(data), "body should be compressed")

	got, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// No temp files left next to the cache.
	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotRegexp(t, `^\.United Kingdom\.pkl\.`, e.Name())
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "France.pkl")
	require.NoError(t, WriteFile(context.Background(), p, []byte("first")))
	require.NoError(t, WriteFile(context.Background(), p, []byte("second")))

	got, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestWriteFile_Concurrent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "France.pkl")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, WriteFile(context.Background(), p, []byte("payload")))
		}()
	}
	wg.Wait()

	got, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestWriteFile_LockHeld(t *testing.T) {
	p := filepath.Join(t.TempDir(), "France.pkl")

	held := flock.New(p + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err = WriteFile(ctx, p, []byte("x"))
	assert.Error(t, err)
	assert.NoFileExists(t, p)
}

func TestReadFile_Corrupt(t *testing.T) {
	dir := t.TempDir()

	badMagic := filepath.Join(dir, "a.pkl")
	require.NoError(t, os.WriteFile(badMagic, []byte("PK\x03\x04"), 0o600))
	_, err := ReadFile(badMagic)
	assert.ErrorIs(t, err, ErrCorrupt)

	badBody := filepath.Join(dir, "b.pkl")
	require.NoError(t, os.WriteFile(badBody, append(append([]byte{}, Magic...), 0xff, 0xff, 0xff), 0o600))
	_, err = ReadFile(badBody)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.pkl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.pkl")
	fresh := filepath.Join(dir, "fresh.pkl")
	csv := filepath.Join(dir, "CPITimeSeries.csv")

	for _, p := range []string{old, fresh, csv} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	removed, err := Purge(dir, ".pkl", 24)
	require.NoError(t, err)
	assert.Equal(t, []string{old}, removed)
	assert.FileExists(t, fresh)
	assert.FileExists(t, csv)

	removed, err = Purge(dir, ".pkl", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{fresh}, removed)
	assert.FileExists(t, csv)
}

func TestPurge_MissingDir(t *testing.T) {
	removed, err := Purge(filepath.Join(t.TempDir(), "nope"), ".pkl", 0)
	assert.NoError(t, err)
	assert.Empty(t, removed)
}
