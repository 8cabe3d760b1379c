// Package http fetches documents over plain HTTP(S), converting HTML pages
// to markdown when needed.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/zerosource"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// maxBodySize is the largest response body accepted.
const maxBodySize = 10 << 20

// Ensure Fetcher implements zerosource.Fetcher at compile time.
var _ zerosource.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves resources from URLs using HTTP GET requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the resource at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*zerosource.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, text/html;q=0.8, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, zerosource.Errorf(zerosource.ENOTFOUND, "document %s not found", url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodySize {
		return nil, zerosource.Errorf(zerosource.EINVALID, "document %s exceeds %d bytes", url, maxBodySize)
	}

	return &zerosource.Resource{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}
