// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	awsx "github.com/staranto/cpictl/internal/aws"
	"github.com/staranto/cpictl/internal/dataset"
	"github.com/staranto/cpictl/internal/filters"
	"github.com/staranto/cpictl/internal/meta"
	"github.com/staranto/cpictl/internal/output"
	"github.com/staranto/cpictl/internal/source"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Writer returns where command output goes, the root command's Writer.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// ErrWriter returns where progress and warnings go, the root command's
// ErrWriter.
func ErrWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

// DataDir returns --data-dir. A relative directory is taken from the
// directory cpictl was started in.
func DataDir(cmd *cli.Command) string {
	dir := cmd.String("data-dir")
	if sd := GetMeta(cmd).StartingDir; sd != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(sd, dir)
	}
	return dir
}

// BuildSettings reads the selection flags. FilePath is left empty for the
// caller to resolve.
func BuildSettings(cmd *cli.Command, country string) dataset.Settings {
	return dataset.Settings{
		CountryName: country,
		Indicator:   cmd.String("indicator"),
		Attribute:   cmd.String("attribute"),
		FirstYear:   cmd.Int("first-year"),
		LastYear:    cmd.Int("last-year"),
	}
}

// BuildOpener returns a source opener configured from the AWS flags.
func BuildOpener(cmd *cli.Command) *source.Opener {
	var opts []awsx.Option
	if p := cmd.String("aws-profile"); p != "" {
		opts = append(opts, awsx.WithProfile(p))
	}
	if r := cmd.String("aws-region"); r != "" {
		opts = append(opts, awsx.WithRegion(r))
	}
	if e := cmd.String("s3-endpoint"); e != "" {
		opts = append(opts, awsx.WithEndpoint(e))
	}
	return source.NewOpener(opts...)
}

// DumpSchemaIfRequested prints the schema for the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(Writer(cmd), t)
		return true
	}
	return false
}

// EmitRecords filters, sorts and renders records per the output flags.
func EmitRecords(records []dataset.Record, cmd *cli.Command) error {
	filtered, err := filters.FilterRecords(records, cmd.String("filter"))
	if err != nil {
		return err
	}
	log.Debugf("emitting %d of %d records", len(filtered), len(records))

	return output.Render(filtered, output.Options{
		Format: cmd.String("output"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
		Sort:   cmd.String("sort"),
		Attrs:  cmd.String("attrs"),
	}, Writer(cmd))
}

// CommandBuilder is a helper that constructs a cli.Command for subcommands
// using a consistent pattern. The builder wires metadata, adds the source
// flags (and the output flags when Output is set) and sets up validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
	// Output adds the filter, sort and format flags.
	Output bool
	// NoSource omits the source selection flags except --data-dir.
	NoSource bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	path := cb.Meta.Config.Source

	flags := cb.Flags
	if cb.NoSource {
		flags = append(flags, NewDataDirFlag(cb.Name, path))
	} else {
		flags = append(flags, NewSourceFlags(cb.Name, path)...)
	}
	if cb.Output {
		flags = append(flags, NewOutputFlags(cb.Name, path)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
