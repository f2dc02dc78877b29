// Package rod provides a browser-based bookscrape.Fetcher for the
// script-rendered pages of the content platform.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mfilipek/bookscrape"
)

// Ensure Fetcher implements bookscrape.Fetcher at compile time.
var _ bookscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered page markup using Chrome browser automation.
// The browser session is shared and stateful: callers fetch strictly
// sequentially and must call Close on every exit path of a scrape run.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// NewFetcher creates a Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{browser: browser, launcher: l}, nil
}

// Fetch navigates to the URL, waits for the page to load plus the policy's
// render delay, and returns the rendered markup.
func (f *Fetcher) Fetch(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", bookscrape.Errorf(bookscrape.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", bookscrape.Errorf(bookscrape.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", bookscrape.Errorf(bookscrape.EUNAVAILABLE, "waiting for %s to load: %v", url, err)
	}

	// Async TOC and article content render after the load event.
	if wait.RenderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait.RenderDelay):
		}
	}

	markup, err := page.HTML()
	if err != nil {
		return "", bookscrape.Errorf(bookscrape.EUNAVAILABLE, "reading page markup: %v", err)
	}

	return markup, nil
}

// Close releases the browser session.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.launcher != nil {
		f.launcher.Kill()
	}
	return err
}
