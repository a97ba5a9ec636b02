// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cpictl/internal/command"
	"github.com/staranto/cpictl/internal/config"
	mylog "github.com/staranto/cpictl/internal/log"
	"github.com/staranto/cpictl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an @set argument into the flags stored under
// <command>.<set> in the config file. Without an explicit @set, the
// "defaults" set is used if present.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	idx := 2
	set := "defaults"
	rest := append([]string{}, args[idx:]...)

	// See if there is a @set specified. If so, it is removed from args and
	// its flags are inserted where it stood.
	for i, a := range rest {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			idx += i
			rest = append(rest[:i], rest[i+1:]...)
			break
		}
	}

	args = append(preamble, rest...) //nolint

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:idx], append(parts, args[idx:]...)...)
		idx += len(parts)
	}

	log.Debugf("idx=%d, set=%s, args=%v", idx, set, args)
	return args
}
