// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain holds the core types and ports shared by all components.
package domain

// Catalog is the set of fonts downloadable from the remote release feed,
// produced fresh on every install invocation.
type Catalog struct {
	// Tag is the release identifier the fonts belong to.
	Tag string
	// Fonts holds the installable font names in feed order.
	Fonts []string
}

// Has reports whether the named font is part of the catalog.
func (c *Catalog) Has(name string) bool {
	for _, font := range c.Fonts {
		if font == name {
			return true
		}
	}

	return false
}

// InstallStatus is the terminal state of a single font installation.
type InstallStatus string

// Terminal states of the per-font install state machine.
const (
	StatusSuccess InstallStatus = "SUCCESS"
	StatusSkipped InstallStatus = "SKIPPED"
	StatusFailed  InstallStatus = "FAILED"
)

// InstallResult reports the outcome of one font installation or removal.
type InstallResult struct {
	Font   string
	Status InstallStatus
	Err    error
}

// InstallationRequest is the resolved, immutable work order for one
// invocation: which fonts to act on and how.
type InstallationRequest struct {
	Fonts    []string
	Force    bool
	Verify   bool
	NoBackup bool
	Parallel int
}
