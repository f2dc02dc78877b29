package scrape_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/goquery"
	"github.com/mfilipek/bookscrape/mock"
	"github.com/mfilipek/bookscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScraper returns a Scraper with pass-through mocks: every article page
// yields a single paragraph derived from its URL and no images.
func newScraper(outline *bookscrape.Outline) *scrape.Scraper {
	return &scrape.Scraper{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(markup string) (*bookscrape.ExtractResult, error) {
				return &bookscrape.ExtractResult{ContentHTML: markup}, nil
			},
		},
		Normalizer: &mock.Normalizer{
			NormalizeFn: func(contentHTML string) (*bookscrape.ContentTree, error) {
				tree := &bookscrape.ContentTree{}
				tree.Append(bookscrape.ContentBlock{
					Kind: bookscrape.BlockParagraph,
					Text: "content of " + contentHTML,
				})
				tree.Rebuild()
				return tree, nil
			},
		},
		Outline: &mock.OutlineParser{
			ParseOutlineFn: func(markup, baseURL string) (*bookscrape.Outline, error) {
				return outline, nil
			},
		},
		Images: &mock.ImageScanner{
			ScanImagesFn: func(markup, pageURL string) ([]bookscrape.ImageRef, error) {
				return nil, nil
			},
		},
		Downloader: &mock.ImageDownloader{
			DownloadFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte("img"), nil
			},
		},
		Store: &mock.ImageStore{
			SaveImageFn: func(name string, data []byte) (string, error) {
				return "images/" + name, nil
			},
		},
	}
}

func twoChapterOutline() *bookscrape.Outline {
	return &bookscrape.Outline{
		Title:       "Intro to Go",
		Description: "A course",
		Chapters: []bookscrape.OutlineChapter{
			{
				Title: "Basics",
				Articles: []bookscrape.ArticleLink{
					{Title: "Hello", URL: "https://learn.example.com/a1"},
					{Title: "Types", URL: "https://learn.example.com/a2"},
				},
			},
			{
				Title: "Concurrency",
				Articles: []bookscrape.ArticleLink{
					{Title: "Goroutines", URL: "https://learn.example.com/a3"},
				},
			},
		},
	}
}

func TestScraper_ScrapeBook(t *testing.T) {
	t.Parallel()

	t.Run("assembles the full hierarchy with dense numbering", func(t *testing.T) {
		t.Parallel()

		s := newScraper(twoChapterOutline())
		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")

		require.NoError(t, err)
		assert.Equal(t, "Intro to Go", book.Title)
		assert.Equal(t, "A course", book.Description)
		assert.False(t, book.ScrapedAt.IsZero())
		require.Len(t, book.Chapters, 2)

		assert.Equal(t, 1, book.Chapters[0].Number)
		assert.Equal(t, "Basics", book.Chapters[0].Title)
		require.Len(t, book.Chapters[0].Articles, 2)
		assert.Equal(t, 1, book.Chapters[0].Articles[0].Number)
		assert.Equal(t, 2, book.Chapters[0].Articles[1].Number)

		assert.Equal(t, 2, book.Chapters[1].Number)
		require.Len(t, book.Chapters[1].Articles, 1)
		assert.Equal(t, 1, book.Chapters[1].Articles[0].Number)

		for _, ch := range book.Chapters {
			for _, art := range ch.Articles {
				assert.False(t, art.Failed())
				assert.NotEmpty(t, art.Content.RawText)
				assert.NotEmpty(t, art.ContentHash)
				assert.GreaterOrEqual(t, art.Metadata.EstimatedReadingTimeMinutes, 1)
			}
		}
	})

	t.Run("book page fetch failure is fatal", func(t *testing.T) {
		t.Parallel()

		s := newScraper(twoChapterOutline())
		s.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
				return "", errors.New("connection refused")
			},
		}

		_, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetching book page")
	})

	t.Run("empty outline is not found", func(t *testing.T) {
		t.Parallel()

		s := newScraper(&bookscrape.Outline{Title: "Empty"})

		_, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.Error(t, err)
		assert.Equal(t, bookscrape.ENOTFOUND, bookscrape.ErrorCode(err))
	})

	t.Run("article failure is isolated to its slot", func(t *testing.T) {
		t.Parallel()

		s := newScraper(twoChapterOutline())
		s.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
				if url == "https://learn.example.com/a2" {
					return "", errors.New("timeout")
				}
				return "<html>" + url + "</html>", nil
			},
		}

		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		failed := book.Chapters[0].Articles[1]
		assert.True(t, failed.Failed())
		assert.Equal(t, 2, failed.Number)
		assert.Contains(t, failed.Metadata.Error, "timeout")
		assert.True(t, failed.Content.Empty())
		assert.Empty(t, failed.ContentHash)

		// Derived metadata stays zero; a failed article must not export
		// measured-looking numbers.
		assert.Equal(t, 0, failed.Metadata.WordCount)
		assert.Equal(t, 0, failed.Metadata.EstimatedReadingTimeMinutes)
		assert.Empty(t, failed.Metadata.Difficulty)
		assert.Empty(t, failed.Metadata.SpacedRepetition.SuggestedIntervals)

		// Neighbors are untouched.
		assert.False(t, book.Chapters[0].Articles[0].Failed())
		assert.False(t, book.Chapters[1].Articles[0].Failed())
	})

	t.Run("identical content yields identical hashes", func(t *testing.T) {
		t.Parallel()

		s := newScraper(twoChapterOutline())
		s.Normalizer = &mock.Normalizer{
			NormalizeFn: func(contentHTML string) (*bookscrape.ContentTree, error) {
				tree := &bookscrape.ContentTree{}
				tree.Append(bookscrape.ContentBlock{Kind: bookscrape.BlockParagraph, Text: "same text"})
				tree.Rebuild()
				return tree, nil
			},
		}

		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		first := book.Chapters[0].Articles[0].ContentHash
		assert.NotEmpty(t, first)
		assert.Equal(t, first, book.Chapters[0].Articles[1].ContentHash)
		assert.Equal(t, first, book.Chapters[1].Articles[0].ContentHash)
	})

	t.Run("cancellation degrades remaining articles", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		fetches := 0
		s := newScraper(twoChapterOutline())
		s.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
				fetches++
				if fetches == 2 { // after the book page and the first article
					cancel()
				}
				return "<html>" + url + "</html>", nil
			},
		}

		book, err := s.ScrapeBook(ctx, "https://learn.example.com/book")
		require.NoError(t, err)

		// First article completed before cancellation took effect.
		assert.False(t, book.Chapters[0].Articles[0].Failed())

		// Remaining articles hold their slots but were never fetched.
		assert.Equal(t, 2, fetches)
		for _, art := range []*bookscrape.Article{
			book.Chapters[0].Articles[1],
			book.Chapters[1].Articles[0],
		} {
			assert.True(t, art.Failed())
			assert.Contains(t, art.Metadata.Error, context.Canceled.Error())
		}
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		var events []scrape.ProgressEvent
		s := newScraper(twoChapterOutline())
		s.Progress = func(event scrape.ProgressEvent) {
			events = append(events, event)
		}

		_, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		require.Len(t, events, 5)
		assert.Equal(t, scrape.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		assert.Equal(t, scrape.ProgressArticleCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, scrape.ProgressFinished, events[4].Type)
		assert.Equal(t, 3, events[4].Completed)
	})
}

func TestScraper_Images(t *testing.T) {
	t.Parallel()

	outline := &bookscrape.Outline{
		Title: "Book",
		Chapters: []bookscrape.OutlineChapter{
			{
				Title: "Ch",
				Articles: []bookscrape.ArticleLink{
					{Title: "Art", URL: "https://learn.example.com/a1"},
				},
			},
		},
	}

	t.Run("scans the extracted content region, not the raw page", func(t *testing.T) {
		t.Parallel()

		var scanned []string
		s := newScraper(outline)
		s.Extractor = &mock.Extractor{
			ExtractFn: func(markup string) (*bookscrape.ExtractResult, error) {
				return &bookscrape.ExtractResult{ContentHTML: "<article><p>body</p></article>"}, nil
			},
		}
		s.Images = &mock.ImageScanner{
			ScanImagesFn: func(markup, pageURL string) ([]bookscrape.ImageRef, error) {
				scanned = append(scanned, markup)
				return nil, nil
			},
		}

		_, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		require.Len(t, scanned, 1)
		assert.Equal(t, "<article><p>body</p></article>", scanned[0])
	})

	t.Run("site chrome images never claim a slot", func(t *testing.T) {
		t.Parallel()

		page := `<!DOCTYPE html>
<html>
<head><title>Art</title></head>
<body>
<header><img src="/static/logo.png" alt="Site logo"></header>
<article>
<h1>Art</h1>
<p>Article body text with enough words to matter.</p>
<img src="/content/diagram.png" alt="Diagram">
</article>
<footer><img src="/static/badge.png"></footer>
</body>
</html>`

		s := newScraper(outline)
		s.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
				return page, nil
			},
		}
		s.Extractor = goquery.NewExtractor()
		s.Images = goquery.NewImageScanner()

		var saved []string
		s.Store = &mock.ImageStore{
			SaveImageFn: func(name string, data []byte) (string, error) {
				saved = append(saved, name)
				return "images/" + name, nil
			},
		}

		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		records := book.Chapters[0].Articles[0].Content.Images
		require.Len(t, records, 1)
		assert.Equal(t, "https://learn.example.com/content/diagram.png", records[0].SourceURL)
		assert.Equal(t, []string{"ch1_art1_img1.png"}, saved)
	})

	t.Run("scan failure yields no images, not a failed article", func(t *testing.T) {
		t.Parallel()

		s := newScraper(outline)
		s.Images = &mock.ImageScanner{
			ScanImagesFn: func(markup, pageURL string) ([]bookscrape.ImageRef, error) {
				return nil, errors.New("invalid page URL")
			},
		}

		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		article := book.Chapters[0].Articles[0]
		assert.False(t, article.Failed())
		assert.NotEmpty(t, article.Content.RawText)
		assert.Empty(t, article.Content.Images)
	})

	t.Run("deduplicates by source URL and names files deterministically", func(t *testing.T) {
		t.Parallel()

		var saved []string
		s := newScraper(outline)
		s.Images = &mock.ImageScanner{
			ScanImagesFn: func(markup, pageURL string) ([]bookscrape.ImageRef, error) {
				return []bookscrape.ImageRef{
					{SourceURL: "https://cdn.example.com/one.jpg", AltText: "first"},
					{SourceURL: "https://cdn.example.com/two.JPEG"},
					{SourceURL: "https://cdn.example.com/one.jpg", AltText: "ignored duplicate"},
					{SourceURL: "https://cdn.example.com/plain"},
				}, nil
			},
		}
		s.Store = &mock.ImageStore{
			SaveImageFn: func(name string, data []byte) (string, error) {
				saved = append(saved, name)
				return "images/" + name, nil
			},
		}

		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		records := book.Chapters[0].Articles[0].Content.Images
		require.Len(t, records, 3)
		assert.Equal(t, "first", records[0].AltText)
		assert.Equal(t, []string{
			"ch1_art1_img1.jpg",
			"ch1_art1_img2.jpeg",
			"ch1_art1_img3.png",
		}, saved)
		assert.Equal(t, "images/ch1_art1_img1.jpg", records[0].LocalPath)
	})

	t.Run("download failure keeps the record without a path", func(t *testing.T) {
		t.Parallel()

		s := newScraper(outline)
		s.Images = &mock.ImageScanner{
			ScanImagesFn: func(markup, pageURL string) ([]bookscrape.ImageRef, error) {
				return []bookscrape.ImageRef{
					{SourceURL: "https://cdn.example.com/broken.png", AltText: "alt"},
					{SourceURL: "https://cdn.example.com/fine.png"},
				}, nil
			},
		}
		s.Downloader = &mock.ImageDownloader{
			DownloadFn: func(ctx context.Context, url string) ([]byte, error) {
				if strings.Contains(url, "broken") {
					return nil, fmt.Errorf("HTTP 403 for %s", url)
				}
				return []byte("img"), nil
			},
		}

		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		article := book.Chapters[0].Articles[0]
		assert.False(t, article.Failed())

		records := article.Content.Images
		require.Len(t, records, 2)
		assert.Empty(t, records[0].LocalPath)
		assert.Contains(t, records[0].Error, "HTTP 403")
		assert.Equal(t, "alt", records[0].AltText)
		assert.NotEmpty(t, records[1].LocalPath)
		assert.Empty(t, records[1].Error)
	})

	t.Run("store failure is recorded like a download failure", func(t *testing.T) {
		t.Parallel()

		s := newScraper(outline)
		s.Images = &mock.ImageScanner{
			ScanImagesFn: func(markup, pageURL string) ([]bookscrape.ImageRef, error) {
				return []bookscrape.ImageRef{{SourceURL: "https://cdn.example.com/a.png"}}, nil
			},
		}
		s.Store = &mock.ImageStore{
			SaveImageFn: func(name string, data []byte) (string, error) {
				return "", errors.New("disk full")
			},
		}

		book, err := s.ScrapeBook(context.Background(), "https://learn.example.com/book")
		require.NoError(t, err)

		records := book.Chapters[0].Articles[0].Content.Images
		require.Len(t, records, 1)
		assert.Empty(t, records[0].LocalPath)
		assert.Contains(t, records[0].Error, "disk full")
	})
}
