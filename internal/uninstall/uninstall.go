// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package uninstall removes installed font directories.
package uninstall

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/logging"
	"github.com/dahromy/nerd-fonts-manager/internal/platform"
)

// Uninstaller removes per-font directories under the fonts root.
type Uninstaller struct {
	plat     platform.Platform
	runner   domain.CommandRunner
	log      *logging.Logger
	fontsDir string
}

// NewUninstaller creates an Uninstaller.
func NewUninstaller(plat platform.Platform, runner domain.CommandRunner, log *logging.Logger, fontsDir string) *Uninstaller {
	return &Uninstaller{
		plat:     plat,
		runner:   runner,
		log:      log,
		fontsDir: fontsDir,
	}
}

// Remove deletes the named fonts. Absent fonts yield ErrFontNotInstalled
// results; the batch always runs to completion. The font cache is
// refreshed once at the end when anything was removed.
func (u *Uninstaller) Remove(ctx context.Context, fonts []string) []domain.InstallResult {
	results := make([]domain.InstallResult, 0, len(fonts))
	removed := 0

	for _, font := range fonts {
		target := filepath.Join(u.fontsDir, font)

		if !platform.IsDir(target) {
			err := fmt.Errorf("%w: %s", domain.ErrFontNotInstalled, font)
			u.log.Errorf("%v", err)
			results = append(results, domain.InstallResult{Font: font, Status: domain.StatusFailed, Err: err})

			continue
		}

		if err := os.RemoveAll(target); err != nil {
			u.log.Errorf("Failed to remove %s: %v", font, err)
			results = append(results, domain.InstallResult{Font: font, Status: domain.StatusFailed, Err: err})

			continue
		}

		u.log.Infof("Uninstalled %s", font)
		results = append(results, domain.InstallResult{Font: font, Status: domain.StatusSuccess})
		removed++
	}

	if removed > 0 {
		if cmd := u.plat.RefreshCommand(); cmd != nil {
			if err := u.runner.Execute(ctx, cmd[0], cmd[1:]...); err != nil {
				u.log.Warnf("Font cache refresh failed: %v", err)
			}
		}
	}

	return results
}

// Installed lists the fonts currently present under the fonts root,
// sorted by name.
func Installed(fontsDir string) []string {
	entries, err := os.ReadDir(fontsDir)
	if err != nil {
		return nil
	}

	fonts := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			fonts = append(fonts, entry.Name())
		}
	}

	sort.Strings(fonts)

	return fonts
}
