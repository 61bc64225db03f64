// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetXDGConfigHomeWithEnv(t *testing.T) {
	t.Parallel()

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "/custom/config", GetXDGConfigHomeWithEnv("/custom/config"))
	})

	t.Run("falls back to ~/.config", func(t *testing.T) {
		t.Parallel()

		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, ".config"), GetXDGConfigHomeWithEnv(""))
	})
}

func TestGetXDGDataHomeWithEnv(t *testing.T) {
	t.Parallel()

	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "/custom/data", GetXDGDataHomeWithEnv("/custom/data"))
	})

	t.Run("falls back to ~/.local/share", func(t *testing.T) {
		t.Parallel()

		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, ".local", "share"), GetXDGDataHomeWithEnv(""))
	})
}

func TestAppDirs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join(GetXDGConfigHome(), "nfm"), ConfigDir())
	assert.Equal(t, filepath.Join(GetXDGCacheHome(), "nfm"), CacheDir())
	assert.Equal(t, filepath.Join(ConfigDir(), "config"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(ConfigDir(), "profiles.toml"), DefaultProfilesPath())
	assert.Equal(t, filepath.Join(GetXDGDataHome(), "nfm", "nfm.log"), DefaultLogPath())
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "tilde prefix",
			path: "~/fonts",
			want: filepath.Join(home, "fonts"),
		},
		{
			name: "xdg config placeholder",
			path: "$XDG_CONFIG_HOME/nfm",
			want: GetXDGConfigHome() + "/nfm",
		},
		{
			name: "xdg data placeholder",
			path: "$XDG_DATA_HOME/fonts",
			want: GetXDGDataHome() + "/fonts",
		},
		{
			name: "absolute path unchanged",
			path: "/opt/fonts",
			want: "/opt/fonts",
		},
		{
			name: "relative path unchanged",
			path: "fonts",
			want: "fonts",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, ExpandPath(testCase.path))
		})
	}
}
