// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// appDirName is the per-application directory under the XDG bases.
const appDirName = "nfm"

// GetXDGConfigHome returns the XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns the XDG config directory with custom environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetXDGDataHome returns the XDG data directory.
func GetXDGDataHome() string {
	return GetXDGDataHomeWithEnv(os.Getenv("XDG_DATA_HOME"))
}

// GetXDGDataHomeWithEnv returns the XDG data directory with custom environment override for testing.
func GetXDGDataHomeWithEnv(xdgDataHome string) string {
	if xdgDataHome != "" {
		return xdgDataHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}

	return ""
}

// GetXDGCacheHome returns the XDG cache directory.
func GetXDGCacheHome() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return cacheHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache")
	}

	return ""
}

// ConfigDir returns the application config directory.
func ConfigDir() string {
	return filepath.Join(GetXDGConfigHome(), appDirName)
}

// CacheDir returns the cache root holding the version file, previews/ and
// the temp/<font> scratch areas.
func CacheDir() string {
	return filepath.Join(GetXDGCacheHome(), appDirName)
}

// DefaultConfigPath returns the default key=value config file location.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config")
}

// DefaultProfilesPath returns the optional user profiles file location.
func DefaultProfilesPath() string {
	return filepath.Join(ConfigDir(), "profiles.toml")
}

// DefaultLogPath returns the default append-only log file location.
func DefaultLogPath() string {
	return filepath.Join(GetXDGDataHome(), appDirName, appDirName+".log")
}

// ExpandPath expands a leading ~ and the XDG placeholder variables.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}

	if after, found := strings.CutPrefix(path, "$XDG_CONFIG_HOME"); found {
		return GetXDGConfigHome() + after
	}

	if after, found := strings.CutPrefix(path, "$XDG_DATA_HOME"); found {
		return GetXDGDataHome() + after
	}

	return path
}
