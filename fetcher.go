package bookscrape

import (
	"context"
	"time"
)

// WaitPolicy controls how long a fetch waits for a page to finish rendering
// before returning its markup. Script-driven pages on the content platform
// need a settle delay after the load event.
type WaitPolicy struct {
	// RenderDelay is additional time to wait after the page load event.
	// Zero means return as soon as the page has loaded.
	RenderDelay time.Duration
}

// Fetcher retrieves raw page markup from URLs. Implementations may use
// browser automation to handle JavaScript-rendered content.
//
// A Fetcher is a scoped resource: it is acquired once per scrape run and
// Close must be called on every exit path.
type Fetcher interface {
	// Fetch navigates to the URL, applies the wait policy, and returns the
	// page markup. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, wait WaitPolicy) (markup string, err error)

	// Close releases the underlying session.
	Close() error
}

// ImageDownloader retrieves raw image bytes. A download failure is isolated
// to the single image record and never fails the article.
type ImageDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// ImageStore persists downloaded image bytes under a deterministic name and
// returns the path the file was written to.
type ImageStore interface {
	SaveImage(name string, data []byte) (path string, err error)
}
