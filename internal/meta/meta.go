// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/cpictl/internal/config"
)

// Meta are the meta-options that are available on all commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// StartingDir is the working directory at startup. A relative data
	// directory is resolved against it.
	StartingDir string
}
