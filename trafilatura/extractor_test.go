package trafilatura_test

import (
	"testing"

	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from metadata", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Getting Started - Intro to Go</title>
<meta property="og:title" content="Getting Started">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Getting Started</h1>
<p>This is the main content of the article page.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("removes boilerplate around the article", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/book">Book</a></nav>
<article>
<h1>Goroutines</h1>
<p>Goroutines are lightweight threads managed by the Go runtime and they carry very little overhead.</p>
<pre><code>go doWork()</code></pre>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2025</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "lightweight threads")
		assert.NotContains(t, result.ContentHTML, "Copyright 2025")
	})

	t.Run("empty markup is invalid", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, bookscrape.EINVALID, bookscrape.ErrorCode(err))
	})
}
