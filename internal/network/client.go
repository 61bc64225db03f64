// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package network provides the HTTP client used for archive downloads.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/platform"
)

// DefaultTimeout bounds a single archive download.
const DefaultTimeout = 5 * time.Minute

// HTTPClient implements the domain.NetworkClient port with resumable
// downloads and optional proxy support.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a client honoring the explicit proxy URL when set,
// otherwise the proxy environment variables.
func NewHTTPClient(timeout time.Duration, proxy string) (*HTTPClient, error) {
	client, err := platform.HTTPClient(proxy)
	if err != nil {
		return nil, err
	}

	client.Timeout = timeout

	return &HTTPClient{client: client}, nil
}

// DownloadFile fetches url into destPath. When destPath already holds a
// partial download, the fetch resumes from its current size via a Range
// request; servers that ignore the range restart the file from scratch.
func (c *HTTPClient) DownloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	var offset int64
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		offset = info.Size()
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	var flags int

	switch resp.StatusCode {
	case http.StatusPartialContent:
		flags = os.O_WRONLY | os.O_APPEND
	case http.StatusOK:
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case http.StatusRequestedRangeNotSatisfiable:
		// Already have the whole file.
		return nil
	default:
		return fmt.Errorf("%w: %s (%s)", domain.ErrBadStatus, resp.Status, url)
	}

	out, err := os.OpenFile(destPath, flags|os.O_CREATE, 0644) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to open destination file: %w", err)
	}

	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	return nil
}
