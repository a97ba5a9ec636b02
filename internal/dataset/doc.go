// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dataset turns a wide CPI time series table into long-format
// observations for one country and indicator, and manages the on-disk cache
// those observations are read back from.
package dataset
