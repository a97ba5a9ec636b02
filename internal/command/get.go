// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/dataset"
	"github.com/staranto/cpictl/internal/meta"
)

// GetCommandAction is the action handler for the "get" subcommand. It
// resolves the source, sanitizes a raw table into the cache when needed and
// emits the cached records. Progress goes to stderr unless --quiet.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(dataset.Record{})) {
		return nil
	}

	dataDir := DataDir(cmd)
	settings := BuildSettings(cmd, cmd.String("country"))
	settings.FilePath = dataset.ResolveSource(dataDir, settings.CountryName, cmd.String("fallback"))

	opts := []dataset.Option{dataset.WithOpener(BuildOpener(cmd))}
	if !cmd.Bool("quiet") {
		opts = append(opts, dataset.WithProgress(ErrWriter(cmd)))
	}

	records, err := dataset.GetDataset(ctx, dataDir, settings, opts...)
	if err != nil {
		return err
	}

	return EmitRecords(records, cmd)
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "get",
		Usage:     "get the CPI series for a country",
		UsageText: `cpictl get [options]`,
		Flags: []cli.Flag{
			NewCountryFlag("get", meta.Config.Source),
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "do not report progress on stderr",
				Sources: cli.NewValueSourceChain(
					configSources("get", meta.Config.Source, "quiet")...,
				),
				HideDefault: true,
			},
		},
		Action: GetCommandAction,
		Meta:   meta,
		Output: true,
	}).Build()
}
