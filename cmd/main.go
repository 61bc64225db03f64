// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for nfm.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dahromy/nerd-fonts-manager/internal/cli"
)

// Exit codes. Every failure maps to ExitError so scripted callers only
// have to distinguish success from failure.
const (
	ExitSuccess = 0
	ExitError   = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewCLI()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "nfm: %v\n", err)

		return ExitError
	}

	return ExitSuccess
}
