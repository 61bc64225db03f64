// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package profiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Builtins(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	assert.Equal(t, []string{AllMono, Coding, Terminal}, reg.Names())

	coding, ok := reg.Get(Coding)
	require.True(t, ok)
	assert.Equal(t, []string{"CascadiaCode", "FiraCode", "JetBrainsMono", "Hack", "SourceCodePro"}, coding)

	terminal, ok := reg.Get(Terminal)
	require.True(t, ok)
	assert.Equal(t, []string{"Meslo", "UbuntuMono", "DejaVuSansMono"}, terminal)

	allMono, ok := reg.Get(AllMono)
	require.True(t, ok)
	assert.Len(t, allMono, 12)
}

func TestRegistry_UnknownProfile(t *testing.T) {
	t.Parallel()

	_, ok := NewRegistry().Get("nonexistent")

	assert.False(t, ok)
}

func TestNewRegistryWithUserFile_MissingFileYieldsBuiltins(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistryWithUserFile(filepath.Join(t.TempDir(), "profiles.toml"))

	require.NoError(t, err)
	assert.Equal(t, []string{AllMono, Coding, Terminal}, reg.Names())
}

func TestNewRegistryWithUserFile_MergesUserProfiles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.toml")
	content := `[profiles]
writing = ["iA-Writer", "Monaspace"]
presenting = ["FiraCode"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	reg, err := NewRegistryWithUserFile(path)

	require.NoError(t, err)
	assert.Equal(t, []string{AllMono, Coding, "presenting", Terminal, "writing"}, reg.Names())

	writing, ok := reg.Get("writing")
	require.True(t, ok)
	assert.Equal(t, []string{"iA-Writer", "Monaspace"}, writing)
}

func TestNewRegistryWithUserFile_ShadowingBuiltinFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.toml")
	require.NoError(t, os.WriteFile(path, []byte("[profiles]\ncoding = [\"Hack\"]\n"), 0644))

	_, err := NewRegistryWithUserFile(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShadowsBuiltin))
}

func TestNewRegistryWithUserFile_InvalidTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.toml")
	require.NoError(t, os.WriteFile(path, []byte("[profiles\nbroken"), 0644))

	_, err := NewRegistryWithUserFile(path)

	require.Error(t, err)
}
