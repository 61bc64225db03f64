// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahromy/nerd-fonts-manager/internal/catalog"
	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/logging"
)

func installFont(t *testing.T, fontsDir, font string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(fontsDir, font), 0755))
}

func TestCheck_UpToDate(t *testing.T) {
	t.Parallel()

	cat := &domain.Catalog{Tag: "v3.3.0", Fonts: []string{"Hack"}}

	fonts, upToDate := Check("v3.3.0", cat, t.TempDir())

	assert.True(t, upToDate)
	assert.Empty(t, fonts)
}

func TestCheck_EmptyCachedTagNeverCountsAsCurrent(t *testing.T) {
	t.Parallel()

	fontsDir := t.TempDir()
	installFont(t, fontsDir, "Hack")

	cat := &domain.Catalog{Tag: "", Fonts: []string{"Hack"}}

	fonts, upToDate := Check("", cat, fontsDir)

	assert.False(t, upToDate)
	assert.Equal(t, []string{"Hack"}, fonts)
}

func TestCheck_NewReleaseListsInstalledFontsStillShipped(t *testing.T) {
	t.Parallel()

	fontsDir := t.TempDir()
	installFont(t, fontsDir, "Hack")
	installFont(t, fontsDir, "RetiredFont")

	cat := &domain.Catalog{Tag: "v3.4.0", Fonts: []string{"Hack", "FiraCode"}}

	fonts, upToDate := Check("v3.3.0", cat, fontsDir)

	assert.False(t, upToDate)
	// Only fonts the new release still ships are refreshed; uninstalled
	// catalog fonts are not pulled in.
	assert.Equal(t, []string{"Hack"}, fonts)
}

func TestRun_UpToDateSkipsDispatch(t *testing.T) {
	t.Parallel()

	cat := &domain.Catalog{Tag: "v3.3.0", Fonts: []string{"Hack"}}

	dispatched := false

	results, outcome := Run(context.Background(), logging.Discard(), "v3.3.0", t.TempDir(), cat,
		func(_ context.Context, _ []string) []domain.InstallResult {
			dispatched = true

			return nil
		})

	assert.Equal(t, UpToDate, outcome)
	assert.Empty(t, results)
	assert.False(t, dispatched)
}

func TestRun_NewReleaseDispatchesInstalledFonts(t *testing.T) {
	t.Parallel()

	fontsDir := t.TempDir()
	installFont(t, fontsDir, "Hack")
	installFont(t, fontsDir, "FiraCode")

	cat := &domain.Catalog{Tag: "v3.4.0", Fonts: []string{"FiraCode", "Hack"}}

	var dispatchedFonts []string

	results, outcome := Run(context.Background(), logging.Discard(), "v3.3.0", fontsDir, cat,
		func(_ context.Context, fonts []string) []domain.InstallResult {
			dispatchedFonts = fonts

			out := make([]domain.InstallResult, 0, len(fonts))
			for _, font := range fonts {
				out = append(out, domain.InstallResult{Font: font, Status: domain.StatusSuccess})
			}

			return out
		})

	assert.Equal(t, Refreshed, outcome)
	assert.Equal(t, []string{"FiraCode", "Hack"}, dispatchedFonts)
	assert.Len(t, results, 2)
}

func TestRun_NewReleaseWithNothingInstalled(t *testing.T) {
	t.Parallel()

	cat := &domain.Catalog{Tag: "v3.4.0", Fonts: []string{"Hack"}}

	results, outcome := Run(context.Background(), logging.Discard(), "v3.3.0", t.TempDir(), cat,
		func(_ context.Context, _ []string) []domain.InstallResult {
			t.Fatal("dispatch must not run with nothing installed")

			return nil
		})

	// Distinct from UpToDate so the CLI can report the new release.
	assert.Equal(t, NothingToRefresh, outcome)
	assert.Empty(t, results)
}

// TestRun_DetectsNewReleaseAfterResolveRecachesTag exercises the update
// command's real order of operations: the cached tag is captured first,
// then catalog resolution overwrites the version file with the fresh tag,
// and only then does the comparison run. Comparing against the rewritten
// file instead would always report up to date.
func TestRun_DetectsNewReleaseAfterResolveRecachesTag(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "version"), []byte("v3.3.0\n"), 0644))

	fontsDir := t.TempDir()
	installFont(t, fontsDir, "Hack")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v3.4.0", "assets": [{"name": "Hack.zip"}]}`))
	}))
	t.Cleanup(server.Close)

	cachedTag := catalog.CachedReleaseTag(cacheDir)

	client := catalog.NewClientWithURLs(server.Client(), server.URL, "", cacheDir)

	cat, err := client.Resolve(context.Background())
	require.NoError(t, err)

	// Resolve has already replaced the cached tag with the fresh one.
	require.Equal(t, "v3.4.0", catalog.CachedReleaseTag(cacheDir))

	var dispatchedFonts []string

	_, outcome := Run(context.Background(), logging.Discard(), cachedTag, fontsDir, cat,
		func(_ context.Context, fonts []string) []domain.InstallResult {
			dispatchedFonts = fonts

			return []domain.InstallResult{{Font: "Hack", Status: domain.StatusSuccess}}
		})

	assert.Equal(t, Refreshed, outcome, "a newer release must not report up to date")
	assert.Equal(t, []string{"Hack"}, dispatchedFonts, "installed fonts must be refreshed on a new release")
}
