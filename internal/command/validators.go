// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cpictl/internal/output"
)

// GlobalFlagsValidator checks flag combinations shared by every subcommand.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.IsSet("first-year") || c.IsSet("last-year") {
		if first, last := c.Int("first-year"), c.Int("last-year"); first > last {
			return fmt.Errorf("--first-year %d is after --last-year %d", first, last)
		}
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func NonEmptyValidator(value any) error {
	if strings.TrimSpace(value.(string)) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func YearValidator(value any) error {
	if y := value.(int); y < 1 || y > 9999 {
		return fmt.Errorf("must be a four digit year, got %d", y)
	}
	return nil
}

func OutputValidator(value any) error {
	valid := false
	for _, v := range output.Formats {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}
