// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/dataset"
	"github.com/staranto/cpictl/internal/meta"
)

// SanitizeCommandAction rebuilds the cache for a country from the raw table,
// whether or not a cache already exists.
func SanitizeCommandAction(ctx context.Context, cmd *cli.Command) error {
	dataDir := DataDir(cmd)
	settings := BuildSettings(cmd, cmd.String("country"))
	settings.FilePath = dataset.FallbackPath(dataDir, cmd.String("fallback"))

	records, err := dataset.Sanitize(ctx, dataDir, settings, dataset.WithOpener(BuildOpener(cmd)))
	if err != nil {
		return err
	}

	path := dataset.CachePath(dataDir, settings.CountryName)
	size := "?"
	if info, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(info.Size())) //nolint:gosec
	}

	fmt.Fprintf(Writer(cmd), "%s: %d records, %s\n", path, len(records), size)
	return nil
}

// SanitizeCommandBuilder constructs the cli.Command for "sanitize".
func SanitizeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "sanitize",
		Usage:     "rebuild a country cache from the raw table",
		UsageText: `cpictl sanitize [options]`,
		Flags: []cli.Flag{
			NewCountryFlag("sanitize", meta.Config.Source),
		},
		Action: SanitizeCommandAction,
		Meta:   meta,
	}).Build()
}
