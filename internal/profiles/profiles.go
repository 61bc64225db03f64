// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package profiles provides the named, curated font sets.
package profiles

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// ErrShadowsBuiltin is returned when a user profile reuses a built-in name.
var ErrShadowsBuiltin = errors.New("user profile shadows built-in profile")

// Built-in profile names.
const (
	Coding   = "coding"
	Terminal = "terminal"
	AllMono  = "all-mono"
)

// builtin maps profile names to ordered font lists. Order is part of the
// contract and preserved through selection and dispatch.
func builtin() map[string][]string {
	return map[string][]string{
		Coding: {
			"CascadiaCode",
			"FiraCode",
			"JetBrainsMono",
			"Hack",
			"SourceCodePro",
		},
		Terminal: {
			"Meslo",
			"UbuntuMono",
			"DejaVuSansMono",
		},
		AllMono: {
			"CascadiaCode",
			"FiraCode",
			"JetBrainsMono",
			"Hack",
			"SourceCodePro",
			"Meslo",
			"UbuntuMono",
			"DejaVuSansMono",
			"RobotoMono",
			"SpaceMono",
			"IBMPlexMono",
			"Inconsolata",
		},
	}
}

// userProfilesFile is the TOML shape of the optional user profiles file:
//
//	[profiles]
//	writing = ["iA-Writer", "Monaspace"]
type userProfilesFile struct {
	Profiles map[string][]string `toml:"profiles"`
}

// Registry resolves profile names to font lists, built-ins first, then
// user-defined profiles from the optional profiles.toml.
type Registry struct {
	profiles map[string][]string
	names    []string
}

// NewRegistry creates a registry with only the built-in profiles.
func NewRegistry() *Registry {
	reg := &Registry{profiles: builtin()}
	reg.rebuildNames()

	return reg
}

// NewRegistryWithUserFile creates a registry merging user profiles from the
// TOML file at path. A missing file yields just the built-ins.
func NewRegistryWithUserFile(path string) (*Registry, error) {
	reg := NewRegistry()

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}

		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var file userProfilesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}

	for name, fonts := range file.Profiles {
		if _, exists := reg.profiles[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrShadowsBuiltin, name)
		}

		reg.profiles[name] = fonts
	}

	reg.rebuildNames()

	return reg, nil
}

// Get returns the ordered font list for a profile.
func (r *Registry) Get(name string) ([]string, bool) {
	fonts, ok := r.profiles[name]

	return fonts, ok
}

// Names returns all profile names, sorted.
func (r *Registry) Names() []string {
	return r.names
}

func (r *Registry) rebuildNames() {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}

	sort.Strings(names)
	r.names = names
}
