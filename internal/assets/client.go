package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodySize    = 8 << 20 // 8 MB
	userAgent      = "github.com/theirongolddev/seventy/1.0"
)

// ErrNotFound indicates the server has no such asset.
var ErrNotFound = errors.New("assets: not found")

// Fetcher retrieves one asset over the network.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (contentType string, body []byte, err error)
}

// HTTPFetcher fetches assets relative to a base URL.
type HTTPFetcher struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewHTTPFetcher creates a fetcher for baseURL. A zero timeout uses the default.
// Returns nil if baseURL is empty.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// BaseURL returns the origin assets are fetched from.
func (f *HTTPFetcher) BaseURL() string { return f.baseURL }

// Fetch performs a GET for path and returns the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (string, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return "", nil, fmt.Errorf("assets: creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	//nolint:gosec // URL is the configured asset origin
	resp, err := f.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("assets: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("assets: %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", nil, fmt.Errorf("assets: reading %s: %w", path, err)
	}
	return resp.Header.Get("Content-Type"), body, nil
}
