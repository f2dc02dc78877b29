// Package slog provides logging decorators for bookscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mfilipek/bookscrape"
)

// Ensure LoggingFetcher implements bookscrape.Fetcher at compile time.
var _ bookscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging of every fetch.
type LoggingFetcher struct {
	next   bookscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next bookscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL, response size, duration, and error outcome of the
// delegated fetch.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, wait bookscrape.WaitPolicy) (markup string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, wait)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
