// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "errors"

// Error taxonomy. Catalog, selection, platform and dependency errors are
// fatal for the whole invocation; download, archive and verification
// errors are per-font and never abort the batch.
var (
	// ErrUnsupportedPlatform is returned when the host OS is not one of
	// Linux, WSL, macOS or Windows.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrMissingDependency is returned when a required external tool is absent.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrCatalogUnavailable is returned when the release feed is unreachable
	// or returns malformed data.
	ErrCatalogUnavailable = errors.New("font catalog unavailable")
	// ErrInvalidSelection is returned when a requested font, profile or menu
	// index does not resolve against the catalog.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrDownloadFailed is returned when a font archive cannot be fetched.
	ErrDownloadFailed = errors.New("download failed")
	// ErrCorruptArchive is returned when a downloaded archive fails the
	// structural validity check.
	ErrCorruptArchive = errors.New("corrupt archive")
	// ErrVerificationFailed is returned when an extracted font file fails
	// validation.
	ErrVerificationFailed = errors.New("font verification failed")
	// ErrFontNotInstalled is returned when uninstalling a font that has no
	// directory under the fonts root.
	ErrFontNotInstalled = errors.New("font not installed")
	// ErrBadStatus is returned when an HTTP request yields an unexpected status.
	ErrBadStatus = errors.New("bad HTTP status")
)
