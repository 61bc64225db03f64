// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package selfupdate replaces the running executable with the latest
// released build. Inherently racy under concurrent invocation, so the
// whole swap runs under a lock file, and the file switch is a single
// atomic rename on the same filesystem.
package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/gofrs/flock"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/logging"
)

// DefaultDownloadBase is where released binaries are published.
const DefaultDownloadBase = "https://github.com/dahromy/nerd-fonts-manager/releases/latest/download"

// ErrUpdateInProgress is returned when another invocation holds the update lock.
var ErrUpdateInProgress = errors.New("another self-update is already in progress")

// Updater downloads and swaps in a new executable.
type Updater struct {
	client       domain.NetworkClient
	log          *logging.Logger
	downloadBase string
	lockPath     string
}

// NewUpdater creates an Updater.
func NewUpdater(client domain.NetworkClient, log *logging.Logger) *Updater {
	return &Updater{
		client:       client,
		log:          log,
		downloadBase: DefaultDownloadBase,
		lockPath:     filepath.Join(os.TempDir(), "nfm-update.lock"),
	}
}

// NewUpdaterWithBase creates an Updater against a custom download base, for testing.
func NewUpdaterWithBase(client domain.NetworkClient, log *logging.Logger, downloadBase, lockPath string) *Updater {
	return &Updater{
		client:       client,
		log:          log,
		downloadBase: downloadBase,
		lockPath:     lockPath,
	}
}

// BinaryName returns the published asset name for the current platform.
func BinaryName() string {
	name := fmt.Sprintf("nfm-%s-%s", runtime.GOOS, runtime.GOARCH)
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	return name
}

// Run downloads the latest binary next to the current executable, swaps it
// in with an atomic rename, and re-executes the process with the original
// arguments. On success it does not return.
func (u *Updater) Run(ctx context.Context, args []string) error {
	lock := flock.New(u.lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire update lock: %w", err)
	}

	if !locked {
		return ErrUpdateInProgress
	}

	defer func() {
		_ = lock.Unlock()
	}()

	target, err := executablePath()
	if err != nil {
		return err
	}

	// Stage in the same directory so the rename cannot cross filesystems.
	stagePath := target + ".new"
	url := u.downloadBase + "/" + BinaryName()

	u.log.Infof("Downloading new executable from %s", url)

	if err := u.client.DownloadFile(ctx, url, stagePath); err != nil {
		_ = os.Remove(stagePath)

		return fmt.Errorf("failed to download update: %w", err)
	}

	if err := os.Chmod(stagePath, 0755); err != nil { //nolint:gosec
		_ = os.Remove(stagePath)

		return fmt.Errorf("failed to mark update executable: %w", err)
	}

	if err := os.Rename(stagePath, target); err != nil {
		_ = os.Remove(stagePath)

		return fmt.Errorf("failed to swap in update: %w", err)
	}

	u.log.Infof("Replaced %s, restarting", target)

	return reexec(target, args)
}

func executablePath() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to determine current executable: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}

	return exePath, nil
}

// reexec restarts the freshly installed binary with the original
// arguments minus the self-update flag, then exits with its code. All
// in-flight state is discarded by design.
func reexec(target string, args []string) error {
	cmd := exec.Command(target, args...) //nolint:gosec
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		return fmt.Errorf("failed to restart: %w", err)
	}

	os.Exit(0)

	return nil
}
