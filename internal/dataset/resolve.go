// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cpictl/internal/cacheutil"
	"github.com/staranto/cpictl/internal/source"
)

// CacheExt is the extension of cache files in the data directory.
const CacheExt = ".pkl"

// CachePath returns where the cache for countryName lives in dataDir.
func CachePath(dataDir string, countryName string) string {
	return filepath.Join(dataDir, countryName+CacheExt)
}

// IsCachePath reports whether path names a cache file rather than a raw
// source.
func IsCachePath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CacheExt)
}

// ResolveSource returns the cache file for countryName if one exists in
// dataDir, otherwise the raw fallback. A fallback that is a remote URI is
// returned as is; a plain name becomes <dataDir>/<fallback>.csv. Nothing is
// checked about the fallback, a missing file surfaces when it is read. With
// caching disabled the cache file is never chosen.
func ResolveSource(dataDir string, countryName string, fallback string) string {
	cache := CachePath(dataDir, countryName)
	if !cacheutil.Enabled() {
		log.Debug("cache disabled")
	} else if info, err := os.Stat(cache); err == nil && !info.IsDir() {
		log.Debugf("using cache %s", cache)
		return cache
	}

	return FallbackPath(dataDir, fallback)
}

// FallbackPath returns the raw source for fallback without looking for a
// cache. Remote URIs are returned unchanged.
func FallbackPath(dataDir string, fallback string) string {
	if source.IsRemote(fallback) {
		return fallback
	}
	return filepath.Join(dataDir, fallback+".csv")
}
