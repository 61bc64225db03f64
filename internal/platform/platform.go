// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides host platform detection and the per-platform
// installation rules (font directory, cache refresh, extraction filter).
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
)

// Platform is the closed set of supported host platforms. Every component
// receives the detected value at startup instead of re-inspecting the OS.
type Platform int

// Supported platforms.
const (
	Linux Platform = iota
	WSL
	MacOS
	Windows
)

// FontExtensions are the two recognized font file extensions.
var FontExtensions = []string{".ttf", ".otf"}

func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case WSL:
		return "wsl"
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	default:
		return "unknown"
	}
}

// Detect identifies the host platform once at startup.
func Detect() (Platform, error) {
	return detect(runtime.GOOS, "/proc/version")
}

// detect is the testable core of Detect.
func detect(goos, procVersionPath string) (Platform, error) {
	switch goos {
	case "linux":
		if isWSL(procVersionPath) {
			return WSL, nil
		}

		return Linux, nil
	case "darwin":
		return MacOS, nil
	case "windows":
		return Windows, nil
	default:
		return 0, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, goos)
	}
}

// isWSL checks the kernel banner for the Microsoft signature.
func isWSL(procVersionPath string) bool {
	data, err := os.ReadFile(procVersionPath) //nolint:gosec
	if err != nil {
		return false
	}

	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

// FontsDir returns the default per-user fonts directory for the platform.
func (p Platform) FontsDir() string {
	switch p {
	case MacOS:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Fonts")
		}

		return ""
	case Windows:
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "Microsoft", "Windows", "Fonts")
		}

		return ""
	default:
		return filepath.Join(GetXDGDataHome(), "fonts")
	}
}

// FlattenExtraction reports whether archives are extracted flat with only
// recognized font files kept. Windows and WSL font handling chokes on
// nested directories; other platforms keep the archive tree as-is.
func (p Platform) FlattenExtraction() bool {
	return p == Windows || p == WSL
}

// RefreshCommand returns the font-cache refresh command, or nil when the
// platform picks up new fonts without one.
func (p Platform) RefreshCommand() []string {
	switch p {
	case Linux, WSL:
		return []string{"fc-cache", "-f"}
	default:
		return nil
	}
}

// ValidatorCommand returns the font validator binary, or empty when only a
// readability check is available.
func (p Platform) ValidatorCommand() string {
	switch p {
	case Linux, WSL:
		return "fc-validate"
	default:
		return ""
	}
}

// RequiredTools lists external commands the platform needs for installs.
func (p Platform) RequiredTools() []string {
	switch p {
	case Linux, WSL:
		return []string{"fc-cache"}
	default:
		return nil
	}
}

// DependencyHint returns an install hint for a missing tool.
func DependencyHint(tool string) string {
	hints := map[string]string{
		"fc-cache":    "install the fontconfig package (apt install fontconfig)",
		"fc-validate": "install the fontconfig package (apt install fontconfig)",
		"magick":      "install ImageMagick (apt install imagemagick)",
		"convert":     "install ImageMagick (apt install imagemagick)",
	}

	if hint, ok := hints[tool]; ok {
		return hint
	}

	return "install it with your system package manager"
}

// IsFontFile reports whether the file name carries a recognized font extension.
func IsFontFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range FontExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}
