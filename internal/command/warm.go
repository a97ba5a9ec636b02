// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/config"
	"github.com/staranto/cpictl/internal/dataset"
	"github.com/staranto/cpictl/internal/meta"
)

const defaultWarmLimit = 4

// WarmCommandAction writes the caches for several countries from a single
// read of the raw table. Without --country the list comes from
// warm.countries in the config file.
func WarmCommandAction(ctx context.Context, cmd *cli.Command) error {
	countries := cmd.StringSlice("country")
	if len(countries) == 0 {
		countries, _ = config.GetStringSlice("warm.countries")
	}
	if len(countries) == 0 {
		countries = []string{dataset.DefaultCountry}
	}
	log.Debugf("warming %v", countries)

	dataDir := DataDir(cmd)
	settings := BuildSettings(cmd, "")
	settings.FilePath = dataset.FallbackPath(dataDir, cmd.String("fallback"))

	results, err := dataset.Warm(ctx, dataDir, settings, countries, cmd.Int("limit"),
		dataset.WithOpener(BuildOpener(cmd)))
	if err != nil {
		return err
	}

	w := Writer(cmd)
	for _, r := range results {
		fmt.Fprintf(w, "%s: %d records\n", r.Path, r.Records)
	}
	return nil
}

// WarmCommandBuilder constructs the cli.Command for "warm".
func WarmCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "warm",
		Usage:     "build caches for several countries",
		UsageText: `cpictl warm [--country NAME]... [options]`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "country",
				Aliases: []string{"n"},
				Usage:   "country name to cache, may be repeated",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum caches written at once, 0 for no limit",
				Sources: cli.NewValueSourceChain(configSources("warm", meta.Config.Source, "limit")...),
				Value:   defaultWarmLimit,
			},
		},
		Action: WarmCommandAction,
		Meta:   meta,
	}).Build()
}
