package goquery_test

import (
	"testing"

	"github.com/mfilipek/bookscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prefers an article element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Page</title></head><body>
<nav>boilerplate</nav>
<article><h1>Lesson</h1><p>Body.</p></article>
<footer>more boilerplate</footer>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Lesson", result.Title)
		assert.Contains(t, result.ContentHTML, "<p>Body.</p>")
		assert.NotContains(t, result.ContentHTML, "boilerplate")
	})

	t.Run("falls back to content-classed container", func(t *testing.T) {
		t.Parallel()

		html := `<body><div class="lesson-content"><p>Inside.</p></div></body>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Inside.")
		assert.Contains(t, result.ContentHTML, "lesson-content")
	})

	t.Run("falls back to body when nothing matches", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract(`<body><p>Bare.</p></body>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Bare.")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract("")

		require.Error(t, err)
	})
}
