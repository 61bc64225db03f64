// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner implements the domain.CommandRunner port for real system
// commands (fc-cache, fc-validate, the preview renderer).
type CommandRunner struct {
	verbose bool
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(verbose bool) *CommandRunner {
	return &CommandRunner{verbose: verbose}
}

// Execute runs a command and returns the result.
func (r *CommandRunner) Execute(ctx context.Context, name string, args ...string) error {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "Executing: %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
