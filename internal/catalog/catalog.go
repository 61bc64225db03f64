// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package catalog resolves the remote Nerd Fonts release feed into the set
// of installable font names.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/platform"
)

const (
	// DefaultAPIURL is the latest-release endpoint of the Nerd Fonts feed.
	DefaultAPIURL = "https://api.github.com/repos/ryanoasis/nerd-fonts/releases/latest"
	// DefaultDownloadBase is the per-release archive download base.
	DefaultDownloadBase = "https://github.com/ryanoasis/nerd-fonts/releases/download"
	// FallbackTag is used when the feed omits the release name.
	FallbackTag = "v3.2.1"

	// archiveSuffix is stripped from asset names to derive font names.
	archiveSuffix = ".zip"
	// versionFileName caches the last seen release tag for update checks.
	versionFileName = "version"
)

// release is the subset of the GitHub release payload the resolver uses.
type release struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

// asset is the subset of the release asset payload the resolver uses.
type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Client implements the domain.CatalogClient port against the HTTP feed.
type Client struct {
	httpClient   *http.Client
	apiURL       string
	downloadBase string
	cacheDir     string
}

// NewClient creates a catalog client. cacheDir receives the version file
// side effect; pass the cache root.
func NewClient(httpClient *http.Client, cacheDir string) *Client {
	return &Client{
		httpClient:   httpClient,
		apiURL:       DefaultAPIURL,
		downloadBase: DefaultDownloadBase,
		cacheDir:     cacheDir,
	}
}

// NewClientWithURLs creates a catalog client against custom endpoints, for testing.
func NewClientWithURLs(httpClient *http.Client, apiURL, downloadBase, cacheDir string) *Client {
	return &Client{
		httpClient:   httpClient,
		apiURL:       apiURL,
		downloadBase: downloadBase,
		cacheDir:     cacheDir,
	}
}

// Resolve queries the release feed once and returns the release tag plus
// the installable font names. A missing tag falls back to FallbackTag; a
// missing or empty asset list is fatal since no fallback list exists.
func (c *Client) Resolve(ctx context.Context) (*domain.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrCatalogUnavailable, c.apiURL, resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("%w: malformed release feed: %w", domain.ErrCatalogUnavailable, err)
	}

	tag := rel.TagName
	if tag == "" {
		tag = FallbackTag
	}

	fonts := make([]string, 0, len(rel.Assets))

	for _, a := range rel.Assets {
		name, found := strings.CutSuffix(a.Name, archiveSuffix)
		if !found || name == "" {
			continue
		}

		fonts = append(fonts, name)
	}

	if len(fonts) == 0 {
		return nil, fmt.Errorf("%w: release %s lists no font archives", domain.ErrCatalogUnavailable, tag)
	}

	c.cacheReleaseTag(tag)

	return &domain.Catalog{Tag: tag, Fonts: fonts}, nil
}

// DownloadURL returns the archive URL for a font within a release.
func (c *Client) DownloadURL(tag, font string) string {
	return fmt.Sprintf("%s/%s/%s%s", c.downloadBase, tag, font, archiveSuffix)
}

// CachedReleaseTag returns the release tag recorded by the previous
// invocation, or empty when none exists.
func CachedReleaseTag(cacheDir string) string {
	data, err := os.ReadFile(filepath.Join(cacheDir, versionFileName)) //nolint:gosec
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// cacheReleaseTag persists the tag for later update comparison. Best
// effort: catalog resolution never fails on a cache write.
func (c *Client) cacheReleaseTag(tag string) {
	if c.cacheDir == "" {
		return
	}

	_ = platform.SafeWriteFile(filepath.Join(c.cacheDir, versionFileName), []byte(tag+"\n"))
}
