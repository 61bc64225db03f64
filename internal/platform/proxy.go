// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HTTPClient returns an HTTP client honoring the explicit proxy URL when
// set, otherwise HTTP_PROXY, HTTPS_PROXY and NO_PROXY from the environment.
func HTTPClient(proxy string) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	if proxy != "" {
		proxyURL, err := ParseProxyURL(proxy)
		if err != nil {
			return nil, err
		}

		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{Transport: transport}, nil
}

// ParseProxyURL validates and normalizes a proxy URL, defaulting the scheme
// to http:// when absent.
func ParseProxyURL(proxy string) (*url.URL, error) {
	if !strings.HasPrefix(proxy, "http://") && !strings.HasPrefix(proxy, "https://") && !strings.HasPrefix(proxy, "socks5://") {
		proxy = "http://" + proxy
	}

	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", proxy, err)
	}

	if proxyURL.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL %q: missing host", proxy)
	}

	return proxyURL, nil
}
