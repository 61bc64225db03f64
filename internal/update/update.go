// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package update reinstalls installed fonts when a newer release is published.
package update

import (
	"context"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/logging"
	"github.com/dahromy/nerd-fonts-manager/internal/uninstall"
)

// Outcome classifies what an update invocation found.
type Outcome int

const (
	// UpToDate means the previously seen release tag already matches the feed.
	UpToDate Outcome = iota
	// NothingToRefresh means a newer release exists but ships none of the
	// installed fonts.
	NothingToRefresh
	// Refreshed means installed fonts were reinstalled against the new release.
	Refreshed
)

// Check compares the previously seen release tag against the resolved
// catalog. Returns the installed fonts needing a refresh, or none when the
// cached tag already matches. The caller must capture cachedTag BEFORE
// resolving the catalog: resolution overwrites the version file with the
// fresh tag, and comparing against that fresh copy would always match.
func Check(cachedTag string, cat *domain.Catalog, fontsDir string) (fonts []string, upToDate bool) {
	if cachedTag == cat.Tag && cachedTag != "" {
		return nil, true
	}

	installed := uninstall.Installed(fontsDir)
	fonts = make([]string, 0, len(installed))

	// Only fonts the new release still ships can be refreshed.
	for _, font := range installed {
		if cat.Has(font) {
			fonts = append(fonts, font)
		}
	}

	return fonts, false
}

// Run refreshes installed fonts against the new release by force
// reinstalling each one through the given install function.
func Run(ctx context.Context, log *logging.Logger, cachedTag, fontsDir string, cat *domain.Catalog,
	dispatch func(context.Context, []string) []domain.InstallResult,
) ([]domain.InstallResult, Outcome) {
	fonts, upToDate := Check(cachedTag, cat, fontsDir)
	if upToDate {
		log.Infof("Fonts are up to date (release %s)", cat.Tag)

		return nil, UpToDate
	}

	if len(fonts) == 0 {
		log.Infof("New release %s available but no installed fonts to update", cat.Tag)

		return nil, NothingToRefresh
	}

	log.Infof("Updating %d fonts to release %s", len(fonts), cat.Tag)

	return dispatch(ctx, fonts), Refreshed
}
