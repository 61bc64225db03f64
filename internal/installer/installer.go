// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package installer downloads, extracts and verifies individual font
// packages, and fans the work out over a bounded worker pool.
package installer

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/logging"
	"github.com/dahromy/nerd-fonts-manager/internal/platform"
)

// File modes applied during permission normalization.
const (
	fontFileMode = os.FileMode(0644)
	fontDirMode  = os.FileMode(0755)
)

// Installer installs one font at a time. Safe for concurrent use: each
// font operates on its own target directory and temp workspace, and the
// logger is line-atomic.
type Installer struct {
	plat     platform.Platform
	client   domain.NetworkClient
	catalog  domain.CatalogClient
	runner   domain.CommandRunner
	log      *logging.Logger
	fontsDir string
	cacheDir string
	tag      string
	force    bool
	verify   bool
}

// Options configures an Installer.
type Options struct {
	Platform platform.Platform
	Client   domain.NetworkClient
	Catalog  domain.CatalogClient
	Runner   domain.CommandRunner
	Log      *logging.Logger
	FontsDir string
	CacheDir string
	Tag      string
	Force    bool
	Verify   bool
}

// New creates an Installer.
func New(opts Options) *Installer {
	return &Installer{
		plat:     opts.Platform,
		client:   opts.Client,
		catalog:  opts.Catalog,
		runner:   opts.Runner,
		log:      opts.Log,
		fontsDir: opts.FontsDir,
		cacheDir: opts.CacheDir,
		tag:      opts.Tag,
		force:    opts.Force,
		verify:   opts.Verify,
	}
}

// Install runs the per-font state machine to one of the terminal states
// SUCCESS, SKIPPED or FAILED. Failures never abort the batch; the caller
// inspects the result.
func (i *Installer) Install(ctx context.Context, font string) domain.InstallResult {
	target := filepath.Join(i.fontsDir, font)

	// Existence of the font directory is the sole idempotency signal.
	if platform.FileExists(target) && !i.force {
		i.log.Infof("Skipping %s: already installed", font)

		return domain.InstallResult{Font: font, Status: domain.StatusSkipped}
	}

	tempDir := filepath.Join(i.cacheDir, "temp", font)
	if err := platform.EnsureDir(tempDir); err != nil {
		return i.fail(font, fmt.Errorf("failed to create temp workspace: %w", err))
	}

	// The scratch area goes away on every exit path; the partially
	// downloaded archive inside it survives only until this returns, so
	// resume only helps within rerun-after-crash scenarios where cleanup
	// did not run.
	defer func() {
		_ = os.RemoveAll(tempDir)
	}()

	archivePath := filepath.Join(tempDir, font+".zip")

	url := i.catalog.DownloadURL(i.tag, font)

	i.log.Infof("Downloading %s from %s", font, url)

	if err := i.client.DownloadFile(ctx, url, archivePath); err != nil {
		return i.fail(font, fmt.Errorf("%w: %s: %w", domain.ErrDownloadFailed, font, err))
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return i.fail(font, fmt.Errorf("%w: %s: %w", domain.ErrCorruptArchive, font, err))
	}

	defer func() {
		_ = reader.Close()
	}()

	if i.force {
		if err := os.RemoveAll(target); err != nil {
			return i.fail(font, fmt.Errorf("failed to clear existing install: %w", err))
		}
	}

	if err := i.extract(&reader.Reader, target); err != nil {
		_ = os.RemoveAll(target)

		return i.fail(font, err)
	}

	if i.verify {
		if err := i.verifyFonts(ctx, target); err != nil {
			_ = os.RemoveAll(target)

			return i.fail(font, err)
		}
	}

	if err := normalizePermissions(target); err != nil {
		return i.fail(font, fmt.Errorf("failed to normalize permissions: %w", err))
	}

	i.log.Infof("Successfully installed %s", font)

	return domain.InstallResult{Font: font, Status: domain.StatusSuccess}
}

func (i *Installer) fail(font string, err error) domain.InstallResult {
	i.log.Errorf("%s: %v", font, err)

	return domain.InstallResult{Font: font, Status: domain.StatusFailed, Err: err}
}

// extract unpacks the archive into target. On flattening platforms only
// recognized font files are kept, basenames only; elsewhere the archive
// tree is preserved as-is.
func (i *Installer) extract(reader *zip.Reader, target string) error {
	if err := platform.EnsureDir(target); err != nil {
		return fmt.Errorf("failed to create font directory: %w", err)
	}

	flatten := i.plat.FlattenExtraction()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		var dest string

		if flatten {
			if !platform.IsFontFile(file.Name) {
				continue
			}

			dest = filepath.Join(target, filepath.Base(file.Name))
		} else {
			dest = filepath.Join(target, filepath.Clean(file.Name))
			// Reject entries escaping the font directory.
			if !strings.HasPrefix(dest, target+string(os.PathSeparator)) {
				continue
			}
		}

		if err := extractFile(file, dest); err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrCorruptArchive, file.Name, err)
		}
	}

	return nil
}

func extractFile(file *zip.File, dest string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}

	defer func() {
		_ = rc.Close()
	}()

	if err := platform.EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}

	out, err := os.Create(dest) //nolint:gosec
	if err != nil {
		return err
	}

	_, err = io.Copy(out, rc) //nolint:gosec
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	return err
}

// verifyFonts checks every extracted font file. One bad file discards the
// whole font. Uses the platform validator when available, otherwise a
// readability check.
func (i *Installer) verifyFonts(ctx context.Context, target string) error {
	validator := i.plat.ValidatorCommand()
	useValidator := validator != "" && i.runner.CommandExists(validator)

	return filepath.Walk(target, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !platform.IsFontFile(path) {
			return nil
		}

		if useValidator {
			if err := i.runner.Execute(ctx, validator, path); err != nil {
				return fmt.Errorf("%w: %s: %w", domain.ErrVerificationFailed, filepath.Base(path), err)
			}

			return nil
		}

		return checkReadable(path)
	})
}

// checkReadable is the fallback validity test where no validator exists:
// the file must open and yield at least one byte.
func checkReadable(path string) error {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrVerificationFailed, filepath.Base(path), err)
	}

	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4)
	if _, err := f.Read(buf); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrVerificationFailed, filepath.Base(path), err)
	}

	return nil
}

// normalizePermissions applies the fixed world-readable modes.
func normalizePermissions(target string) error {
	return filepath.Walk(target, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		mode := fontFileMode
		if info.IsDir() {
			mode = fontDirMode
		}

		return os.Chmod(path, mode)
	})
}
