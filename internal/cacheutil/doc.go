// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil stores, reads and purges cache files in the data
// directory.
package cacheutil
