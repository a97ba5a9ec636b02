// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/cacheutil"
	"github.com/staranto/cpictl/internal/dataset"
	"github.com/staranto/cpictl/internal/meta"
)

// PurgeCommandAction removes cache files from the data directory. Raw tables
// are never touched.
func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	removed, err := cacheutil.Purge(DataDir(cmd), dataset.CacheExt, cmd.Int("older-than"))
	if err != nil {
		return err
	}

	w := Writer(cmd)
	for _, p := range removed {
		fmt.Fprintln(w, p)
	}
	return nil
}

// PurgeCommandBuilder constructs the cli.Command for "purge".
func PurgeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "purge",
		Usage:     "remove cache files",
		UsageText: `cpictl purge [--older-than HOURS] [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "older-than",
				Usage: "only remove caches older than this many hours, 0 removes all",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("purge.older-than", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("cache.clean", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
		},
		Action:   PurgeCommandAction,
		Meta:     meta,
		NoSource: true,
	}).Build()
}
