// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package backup snapshots the fonts directory before mutating operations.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dahromy/nerd-fonts-manager/internal/logging"
	"github.com/dahromy/nerd-fonts-manager/internal/platform"
)

// timestampLayout names snapshots to second granularity.
const timestampLayout = "20060102-150405"

// Manager creates best-effort snapshots. Restore is a manual operation;
// nothing in the tool reads snapshots back.
type Manager struct {
	log *logging.Logger
	now func() time.Time
}

// NewManager creates a backup manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{log: log, now: time.Now}
}

// NewManagerWithClock creates a backup manager with a fixed clock, for testing.
func NewManagerWithClock(log *logging.Logger, now func() time.Time) *Manager {
	return &Manager{log: log, now: now}
}

// Snapshot copies the entire fonts directory into a timestamped sibling
// directory and returns its path. An absent or empty fonts directory
// yields no snapshot. Partial copy errors are logged, never fatal.
func (m *Manager) Snapshot(fontsDir string) (string, error) {
	if !platform.IsDir(fontsDir) || platform.DirIsEmpty(fontsDir) {
		return "", nil
	}

	dest := fmt.Sprintf("%s-backup-%s", strings.TrimRight(fontsDir, string(os.PathSeparator)), m.now().Format(timestampLayout))

	if err := platform.EnsureDir(dest); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	m.copyTree(fontsDir, dest)

	m.log.Infof("Backed up %s to %s", fontsDir, dest)

	return dest, nil
}

// copyTree copies best-effort: individual file failures are logged and
// skipped so one unreadable file cannot block the install.
func (m *Manager) copyTree(src, dest string) {
	_ = filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			m.log.Warnf("Backup: skipping %s: %v", path, err)

			return nil //nolint:nilerr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil || rel == "." {
			return nil
		}

		target := filepath.Join(dest, rel)

		if info.IsDir() {
			if err := platform.EnsureDir(target); err != nil {
				m.log.Warnf("Backup: failed to create %s: %v", target, err)
			}

			return nil
		}

		if err := platform.CopyFile(path, target); err != nil {
			m.log.Warnf("Backup: failed to copy %s: %v", path, err)
		}

		return nil
	})
}
