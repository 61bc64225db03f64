// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
)

func newClient(t *testing.T) *HTTPClient {
	t.Helper()

	client, err := NewHTTPClient(10*time.Second, "")
	require.NoError(t, err)

	return client
}

func TestDownloadFile_FullDownload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("archive bytes"))
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "font.zip")

	require.NoError(t, newClient(t).DownloadFile(context.Background(), server.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "archive bytes", string(data))
}

func TestDownloadFile_ResumesPartialDownload(t *testing.T) {
	t.Parallel()

	const full = "0123456789"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rangeHeader := r.Header.Get("Range")
		require.True(t, strings.HasPrefix(rangeHeader, "bytes="))

		offset, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(rangeHeader, "bytes="), "-"))
		require.NoError(t, err)

		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, len(full)-1, len(full)))
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte(full[offset:]))
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "font.zip")
	require.NoError(t, os.WriteFile(dest, []byte(full[:4]), 0644))

	require.NoError(t, newClient(t).DownloadFile(context.Background(), server.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, full, string(data))
}

func TestDownloadFile_ServerIgnoringRangeRestartsFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fresh content"))
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "font.zip")
	require.NoError(t, os.WriteFile(dest, []byte("stale partial data longer than fresh"), 0644))

	require.NoError(t, newClient(t).DownloadFile(context.Background(), server.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "fresh content", string(data))
}

func TestDownloadFile_RangeNotSatisfiableMeansComplete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "font.zip")
	require.NoError(t, os.WriteFile(dest, []byte("complete archive"), 0644))

	require.NoError(t, newClient(t).DownloadFile(context.Background(), server.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "complete archive", string(data))
}

func TestDownloadFile_BadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "font.zip")

	err := newClient(t).DownloadFile(context.Background(), server.URL, dest)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadStatus))
}

func TestDownloadFile_ConnectionFailure(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "font.zip")

	err := newClient(t).DownloadFile(context.Background(), "http://127.0.0.1:1/font.zip", dest)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDownloadFailed))
}
