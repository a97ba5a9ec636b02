// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/config"
	"github.com/staranto/cpictl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the cpictl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is fine unless one was asked for.
	cfg, err := config.Load(ns)
	if err != nil {
		if os.Getenv("CPICTL_CFG") != "" {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		log.Debugf("no config: %v", err)
	}
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "cpictl",
		Usage: "CPI series cache control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cpictl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		GetCommandBuilder(app, meta),
		SanitizeCommandBuilder(app, meta),
		ResolveCommandBuilder(app, meta),
		VerifyCommandBuilder(app, meta),
		WarmCommandBuilder(app, meta),
		PurgeCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
