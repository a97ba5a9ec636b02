// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gofrs/flock"
	"github.com/golang/snappy"
)

// Magic prefixes every cache file.
var Magic = []byte("CPIC")

// ErrCorrupt is returned when a cache file does not carry the magic prefix or
// its body does not decompress.
var ErrCorrupt = errors.New("corrupt cache file")

// lockRetryInterval is how often a held lock is polled.
const lockRetryInterval = 50 * time.Millisecond

// DefaultDataDir is used when neither --data-dir nor CPICTL_DATA_DIR is set.
const DefaultDataDir = "data"

// Enabled returns true unless CPICTL_CACHE explicitly disables it with a
// false value ("0", "f", "false" in any case). Unparseable values leave the
// cache on.
func Enabled() bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("CPICTL_CACHE")))
	return err != nil || enabled
}

// WriteFile stores data at path. The body is snappy compressed behind Magic.
// Writers are serialized on <path>.lock and the file is replaced by rename,
// so readers never see a partial file.
func WriteFile(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	fl, err := acquireLock(ctx, path+".lock")
	if err != nil {
		return err
	}
	defer releaseLock(fl)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	body := append(append([]byte{}, Magic...), snappy.Encode(nil, data)...)
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	return nil
}

// ReadFile returns the decompressed body stored at path.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	if !bytes.HasPrefix(b, Magic) {
		return nil, fmt.Errorf("%w: %s: bad magic", ErrCorrupt, path)
	}

	data, err := snappy.Decode(nil, b[len(Magic):])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	return data, nil
}

// Purge removes files in dir ending in ext that are older than the provided
// number of hours. hours <= 0 removes every match. The removed paths are
// returned. A missing dir is not an error.
func Purge(dir string, ext string, hours int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to purge cache: %w", err)
	}

	maxAge := time.Duration(hours) * time.Hour

	var removed []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		if hours > 0 && time.Since(info.ModTime()) <= maxAge {
			continue
		}

		p := filepath.Join(dir, e.Name())
		if err := os.Remove(p); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", p)
			continue
		}
		// Lock files are left behind by writers. Drop ours with the entry.
		_ = os.Remove(p + ".lock")

		log.Debugf("removed cache file %s", p)
		removed = append(removed, p)
	}

	return removed, nil
}

// acquireLock takes an exclusive lock on lockPath, polling until it is free
// or ctx is done.
func acquireLock(ctx context.Context, lockPath string) (*flock.Flock, error) {
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock %s: lock not acquired", lockPath)
	}

	return fl, nil
}

func releaseLock(fl *flock.Flock) {
	if err := fl.Close(); err != nil {
		log.Debugf("failed to release lock %s: %v", fl.Path(), err)
	}
}
