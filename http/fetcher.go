// Package http provides an HTTP-based implementation of bookscrape.Fetcher
// for static pages, and the image downloader used by every scrape run.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mfilipek/bookscrape"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// defaultUserAgent identifies the scraper politely to the content platform.
const defaultUserAgent = "bookscrape/1.0 (+https://github.com/mfilipek/bookscrape)"

// Ensure Fetcher implements both fetch interfaces at compile time.
var (
	_ bookscrape.Fetcher         = (*Fetcher)(nil)
	_ bookscrape.ImageDownloader = (*Fetcher)(nil)
)

// Fetcher retrieves page markup and image bytes over plain HTTP. Unlike
// rod.Fetcher it does not execute JavaScript, so the wait policy's render
// delay is meaningless and ignored.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the markup from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string, _ bookscrape.WaitPolicy) (string, error) {
	body, err := f.get(ctx, url, "text/html,application/xhtml+xml")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Download retrieves raw image bytes from the given URL.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	return f.get(ctx, url, "image/*,*/*;q=0.8")
}

func (f *Fetcher) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "building request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, bookscrape.Errorf(bookscrape.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return body, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
