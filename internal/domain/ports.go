// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "context"

// CommandRunner defines the interface for executing system commands
// (font-cache refresh, font validators, preview rendering).
type CommandRunner interface {
	// Execute runs a command and returns the result.
	Execute(ctx context.Context, name string, args ...string) error

	// CommandExists checks if a command is available on the system.
	CommandExists(name string) bool
}

// NetworkClient defines the interface for downloading font archives.
type NetworkClient interface {
	// DownloadFile downloads a file from a URL to a destination path,
	// resuming from the bytes already present at destPath.
	DownloadFile(ctx context.Context, url, destPath string) error
}

// CatalogClient defines the interface for resolving the remote release feed.
type CatalogClient interface {
	// Resolve returns the latest release and the installable font names.
	Resolve(ctx context.Context) (*Catalog, error)

	// DownloadURL returns the archive URL for a font within a release.
	DownloadURL(tag, font string) string
}
