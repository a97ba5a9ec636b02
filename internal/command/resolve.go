// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/dataset"
	"github.com/staranto/cpictl/internal/meta"
)

// ResolveCommandAction prints the source get would read.
func ResolveCommandAction(ctx context.Context, cmd *cli.Command) error {
	path := dataset.ResolveSource(DataDir(cmd), cmd.String("country"), cmd.String("fallback"))
	_, err := fmt.Fprintln(Writer(cmd), path)
	return err
}

// ResolveCommandBuilder constructs the cli.Command for "resolve".
func ResolveCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "resolve",
		Usage:     "show the source that would be read",
		UsageText: `cpictl resolve [options]`,
		Flags: []cli.Flag{
			NewCountryFlag("resolve", meta.Config.Source),
		},
		Action: ResolveCommandAction,
		Meta:   meta,
	}).Build()
}
