/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package git

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bennypowers.dev/depspec/internal/logger"
	"bennypowers.dev/depspec/internal/version"
)

// DefaultProbeTimeout is the maximum time to wait for an HTTPS probe.
const DefaultProbeTimeout = 30 * time.Second

// HTTPProber checks whether a hosted repository is publicly readable by
// sending a HEAD request to its web page.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates an HTTPProber whose requests give up after timeout.
// Redirects are not followed: a moved or login-gated repository is not public.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProber{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// IsPublic reports whether the repository at httpsURL answers a HEAD
// request for its page (the URL without ".git") with a 2xx status.
func (p *HTTPProber) IsPublic(ctx context.Context, httpsURL string) bool {
	page := strings.TrimSuffix(httpsURL, ".git")
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, page, nil)
	if err != nil {
		logger.Debug("creating request for %s: %v", page, err)
		return false
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Debug("probing %s: %v", page, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
