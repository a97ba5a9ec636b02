// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/dataset"
	"github.com/staranto/cpictl/internal/differ"
	"github.com/staranto/cpictl/internal/meta"
)

// ErrStaleCache is returned by verify when the cache no longer matches the
// raw table.
var ErrStaleCache = errors.New("cache differs from source")

// VerifyCommandAction sanitizes the raw table in memory and compares it to
// the country's cache. The cache is not rewritten.
func VerifyCommandAction(ctx context.Context, cmd *cli.Command) error {
	dataDir := DataDir(cmd)
	settings := BuildSettings(cmd, cmd.String("country"))
	settings.FilePath = dataset.FallbackPath(dataDir, cmd.String("fallback"))

	path := dataset.CachePath(dataDir, settings.CountryName)
	cached, err := dataset.ReadCache(path)
	if err != nil {
		return err
	}

	fresh, err := dataset.LoadRaw(ctx, settings, dataset.WithOpener(BuildOpener(cmd)))
	if err != nil {
		return err
	}

	result, err := differ.Diff(cached, fresh)
	if err != nil {
		return err
	}

	w := Writer(cmd)
	if result.Modified {
		fmt.Fprint(w, result.Delta)
		return fmt.Errorf("%w: %s", ErrStaleCache, path)
	}

	fmt.Fprintf(w, "%s: up to date, %d records\n", path, len(cached))
	return nil
}

// VerifyCommandBuilder constructs the cli.Command for "verify".
func VerifyCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "verify",
		Usage:     "compare a country cache with the raw table",
		UsageText: `cpictl verify [options]`,
		Flags: []cli.Flag{
			NewCountryFlag("verify", meta.Config.Source),
		},
		Action: VerifyCommandAction,
		Meta:   meta,
	}).Build()
}
