package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/mock"
	bsslog "github.com/mfilipek/bookscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := bsslog.NewLoggingFetcher(inner, logger)
		markup, err := fetcher.Fetch(context.Background(), "https://learn.example.com/book", bookscrape.WaitPolicy{})

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", markup)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://learn.example.com/book")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := bsslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://learn.example.com/book", bookscrape.WaitPolicy{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeCalled := false
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
			return "", nil
		},
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	fetcher := bsslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, fetcher.Close())
	assert.True(t, closeCalled)
}
