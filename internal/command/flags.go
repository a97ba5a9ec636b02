// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/cacheutil"
	"github.com/staranto/cpictl/internal/dataset"
)

// configSources returns the namespaced and global config file sources for key.
func configSources(ns string, path string, key string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)),
		yaml.YAML(key, altsrc.StringSourcer(path)),
	}
}

// NewSourceFlags are the flags that name the data directory and select the
// row to extract. params[0] is the command namespace, params[1] the config
// file. The country flag is not included, see NewCountryFlag.
func NewSourceFlags(params ...string) (flags []cli.Flag) {
	ns, path := params[0], params[1]

	flags = []cli.Flag{
		NewDataDirFlag(ns, path),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "indicator",
			Usage:   "indicator code to select",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CPICTL_INDICATOR")),
			Value:   dataset.DefaultIndicator,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "attribute",
			Usage:   "attribute to select",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CPICTL_ATTRIBUTE")),
			Value:   dataset.DefaultAttribute,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "fallback",
			Usage:   "raw table name in the data directory, or an s3:// URI",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CPICTL_FALLBACK")),
			Value:   dataset.DefaultFallback,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, NonEmptyValidator)
			},
		}),
		&cli.IntFlag{
			Name:    "first-year",
			Usage:   "first year of period columns to keep",
			Sources: cli.NewValueSourceChain(configSources(ns, path, "first-year")...),
			Value:   dataset.DefaultFirstYear,
			Validator: func(value int) error {
				return FlagValidators(value, YearValidator)
			},
		},
		&cli.IntFlag{
			Name:    "last-year",
			Usage:   "last year of period columns to keep",
			Sources: cli.NewValueSourceChain(configSources(ns, path, "last-year")...),
			Value:   dataset.DefaultLastYear,
			Validator: func(value int) error {
				return FlagValidators(value, YearValidator)
			},
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "aws-profile",
			Usage:   "AWS shared config profile for s3:// sources",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "aws-region",
			Usage:   "AWS region for s3:// sources",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "custom S3 endpoint, path style addressing is used",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CPICTL_S3_ENDPOINT")),
		}),
	}

	return
}

// NewDataDirFlag constructs the --data-dir flag.
func NewDataDirFlag(params ...string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(params[0], params[1], &cli.StringFlag{
		Name:    "data-dir",
		Aliases: []string{"d"},
		Usage:   "directory holding the raw table and the caches",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CPICTL_DATA_DIR"),
		),
		Value: cacheutil.DefaultDataDir,
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, NonEmptyValidator)
		},
	})
}

// NewCountryFlag constructs the single-country --country flag.
func NewCountryFlag(params ...string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(params[0], params[1], &cli.StringFlag{
		Name:    "country",
		Aliases: []string{"n"},
		Usage:   "country name to select",
		Sources: cli.NewValueSourceChain(cli.EnvVar("CPICTL_COUNTRY")),
		Value:   dataset.DefaultCountry,
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, NonEmptyValidator)
		},
	})
}

// NewOutputFlags are the flags that shape rendered records.
func NewOutputFlags(params ...string) (flags []cli.Flag) {
	ns, path := params[0], params[1]

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns to include in text and csv output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"attrs", altsrc.StringSourcer(path)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(configSources(ns, path, "color")...),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(configSources(ns, path, "output")...),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "schema",
			Usage:       "dump the schema",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"sort", altsrc.StringSourcer(path)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(configSources(ns, path, "titles")...),
			Value:   false,
		},
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, path, flag.Name)...)
	return flag
}
