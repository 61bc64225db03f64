// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads and saves the persisted key=value settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dahromy/nerd-fonts-manager/internal/platform"
)

// DefaultParallel is the default number of concurrent installations.
const DefaultParallel = 3

// Recognized config keys.
const (
	keyFontsDir = "fonts_dir"
	keyParallel = "parallel"
	keyProxy    = "proxy"
)

// Config holds the persisted settings. CLI flags override loaded values;
// --save-config writes the merged result back.
type Config struct {
	FontsDir string
	Parallel int
	Proxy    string
}

// Default returns the config used when no file exists.
func Default(plat platform.Platform) *Config {
	return &Config{
		FontsDir: plat.FontsDir(),
		Parallel: DefaultParallel,
	}
}

// Load reads the key=value config file at path, falling back to defaults
// for missing keys. A missing file is not an error.
func Load(path string, plat platform.Platform) (*Config, error) {
	cfg := Default(plat)

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("invalid config line %d in %s: %q", lineNo+1, path, line)
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case keyFontsDir:
			cfg.FontsDir = platform.ExpandPath(value)
		case keyParallel:
			parallel, err := strconv.Atoi(value)
			if err != nil || parallel < 1 {
				return nil, fmt.Errorf("invalid %s value in %s: %q", keyParallel, path, value)
			}

			cfg.Parallel = parallel
		case keyProxy:
			cfg.Proxy = value
		default:
			// Unknown keys are preserved mentally but ignored, so configs
			// written by newer versions still load.
			continue
		}
	}

	return cfg, nil
}

// Save writes the config back as key=value lines, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s=%s\n", keyFontsDir, c.FontsDir)
	fmt.Fprintf(&b, "%s=%d\n", keyParallel, c.Parallel)

	if c.Proxy != "" {
		fmt.Fprintf(&b, "%s=%s\n", keyProxy, c.Proxy)
	}

	return os.WriteFile(path, []byte(b.String()), 0644) //nolint:gosec
}
