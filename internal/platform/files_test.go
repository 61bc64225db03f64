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

func TestCopyFile_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.ttf")
	dst := filepath.Join(dir, "nested", "deeper", "dst.ttf")

	require.NoError(t, os.WriteFile(src, []byte("font bytes"), 0644))
	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "font bytes", string(data))
}

func TestCopyFile_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))

	require.Error(t, err)
}

func TestSafeWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "file.txt")

	require.NoError(t, SafeWriteFile(path, []byte("content")))
	assert.True(t, FileExists(path))
}

func TestDirIsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	assert.True(t, DirIsEmpty(dir))
	assert.True(t, DirIsEmpty(filepath.Join(dir, "missing")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "entry"), []byte("x"), 0644))
	assert.False(t, DirIsEmpty(dir))
}

func TestIsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(dir, "missing")))
}
