// Package scrape provides book scraping orchestration. It coordinates
// outline discovery, article fetching, content normalization, image
// resolution, and learning metadata derivation into a single Book.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mfilipek/bookscrape"
)

// defaultImageExt is used when an image URL's path carries no usable
// extension.
const defaultImageExt = "png"

// Scraper orchestrates the scraping of one shared book. Articles are
// processed strictly sequentially in discovery order; the Pacer spaces
// fetches to stay polite to the host.
type Scraper struct {
	Fetcher    bookscrape.Fetcher
	Extractor  bookscrape.Extractor
	Normalizer bookscrape.Normalizer
	Outline    bookscrape.OutlineParser
	Images     bookscrape.ImageScanner
	Downloader bookscrape.ImageDownloader
	Store      bookscrape.ImageStore

	// Wait applies to every page fetch.
	Wait bookscrape.WaitPolicy

	// Pacer is optional; nil means no delay between article fetches.
	Pacer *Pacer

	// Logger is optional; nil discards log output.
	Logger *slog.Logger

	// Progress is optional; if set it receives events as articles complete.
	Progress ProgressFunc

	// Now is overridable for tests. Defaults to time.Now.
	Now func() time.Time
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressArticleCompleted
	ProgressArticleFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeBook discovers the book's outline at the given URL and assembles a
// complete Book. Only discovery failures are fatal: a failed article is
// recorded in place with empty content and an error message, and a failed
// image download is recorded on its image record. Cancellation is honored
// at article boundaries; articles not yet fetched when the context ends are
// recorded as degraded.
func (s *Scraper) ScrapeBook(ctx context.Context, bookURL string) (*bookscrape.Book, error) {
	logger := s.logger()

	markup, err := s.Fetcher.Fetch(ctx, bookURL, s.Wait)
	if err != nil {
		return nil, fmt.Errorf("fetching book page: %w", err)
	}

	outline, err := s.Outline.ParseOutline(markup, bookURL)
	if err != nil {
		return nil, fmt.Errorf("parsing book outline: %w", err)
	}
	if len(outline.Chapters) == 0 {
		return nil, bookscrape.Errorf(bookscrape.ENOTFOUND, "no chapters found at %s", bookURL)
	}

	book := &bookscrape.Book{
		URL:         bookURL,
		Title:       outline.Title,
		Description: outline.Description,
		ScrapedAt:   s.now(),
	}

	total := 0
	for _, ch := range outline.Chapters {
		total += len(ch.Articles)
	}

	logger.Info("book discovered",
		"url", bookURL,
		"title", outline.Title,
		"chapters", len(outline.Chapters),
		"articles", total,
	)

	s.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	// Once the context ends, remaining articles are recorded without
	// fetching. Numbering stays dense either way.
	var ctxErr error
	completed := 0

	for ci, och := range outline.Chapters {
		chapter := &bookscrape.Chapter{
			Number: ci + 1,
			Title:  och.Title,
		}

		for ai, link := range och.Articles {
			article := &bookscrape.Article{
				Number: ai + 1,
				Title:  link.Title,
				URL:    link.URL,
			}

			if ctxErr == nil {
				ctxErr = s.pace(ctx)
			}

			if ctxErr != nil {
				s.degrade(article, ctxErr)
			} else if err := s.scrapeArticle(ctx, chapter.Number, article); err != nil {
				s.degrade(article, err)
				logger.Warn("article failed",
					"chapter", chapter.Number,
					"article", article.Number,
					"url", article.URL,
					"err", err,
				)
			}

			completed++
			if article.Failed() {
				s.notify(ProgressEvent{
					Type:      ProgressArticleFailed,
					Completed: completed,
					Total:     total,
					URL:       article.URL,
					Error:     fmt.Errorf("%s", article.Metadata.Error),
				})
			} else {
				s.notify(ProgressEvent{
					Type:      ProgressArticleCompleted,
					Completed: completed,
					Total:     total,
					URL:       article.URL,
				})
			}

			chapter.Articles = append(chapter.Articles, article)
		}

		book.Chapters = append(book.Chapters, chapter)
	}

	s.notify(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	logger.Info("book scraped",
		"title", book.Title,
		"chapters", len(book.Chapters),
		"articles", book.TotalArticles(),
		"images", book.TotalImages(),
	)

	return book, nil
}

// scrapeArticle fetches, extracts, and normalizes one article in place.
// Errors returned here degrade the article; they never abort the run.
func (s *Scraper) scrapeArticle(ctx context.Context, chapterNum int, article *bookscrape.Article) error {
	markup, err := s.Fetcher.Fetch(ctx, article.URL, s.Wait)
	if err != nil {
		return fmt.Errorf("fetching article: %w", err)
	}

	extracted, err := s.Extractor.Extract(markup)
	if err != nil {
		return fmt.Errorf("extracting content: %w", err)
	}

	tree, err := s.Normalizer.Normalize(extracted.ContentHTML)
	if err != nil {
		return fmt.Errorf("normalizing content: %w", err)
	}

	// Scan the extracted content region, not the full page, so site chrome
	// (header logos, nav icons) never claims an image slot. A scan failure
	// means no images, never a failed article.
	refs, err := s.Images.ScanImages(extracted.ContentHTML, article.URL)
	if err != nil {
		s.logger().Warn("image scan failed",
			"url", article.URL,
			"err", err,
		)
		refs = nil
	}
	tree.Images = s.resolveImages(ctx, chapterNum, article.Number, refs)

	article.Content = *tree
	if tree.RawText != "" {
		article.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(tree.RawText))
	}
	article.Metadata = bookscrape.ComputeMetadata(tree.RawText)

	return nil
}

// resolveImages deduplicates references by source URL (first occurrence
// wins) and downloads each unique image once. A failed download keeps its
// record with the error noted and no local path.
func (s *Scraper) resolveImages(ctx context.Context, chapterNum, articleNum int, refs []bookscrape.ImageRef) []bookscrape.ImageRecord {
	if len(refs) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(refs))
	var records []bookscrape.ImageRecord

	for _, ref := range refs {
		if seen[ref.SourceURL] {
			continue
		}
		seen[ref.SourceURL] = true

		record := bookscrape.ImageRecord{
			SourceURL: ref.SourceURL,
			AltText:   ref.AltText,
			Caption:   ref.Caption,
		}

		name := fmt.Sprintf("ch%d_art%d_img%d.%s",
			chapterNum, articleNum, len(records)+1, imageExt(ref.SourceURL))

		if data, err := s.Downloader.Download(ctx, ref.SourceURL); err != nil {
			record.Error = err.Error()
		} else if localPath, err := s.Store.SaveImage(name, data); err != nil {
			record.Error = err.Error()
		} else {
			record.LocalPath = localPath
		}

		records = append(records, record)
	}

	return records
}

// degrade records a failed article: empty content and bare metadata holding
// only the failure message. Derived fields stay zero so a failed article
// never exports measured-looking numbers. The article keeps its assigned
// number.
func (s *Scraper) degrade(article *bookscrape.Article, err error) {
	article.Content = bookscrape.ContentTree{}
	article.ContentHash = ""
	article.Metadata = bookscrape.Metadata{Error: err.Error()}
}

func (s *Scraper) pace(ctx context.Context) error {
	if s.Pacer == nil {
		return ctx.Err()
	}
	return s.Pacer.Wait(ctx)
}

func (s *Scraper) notify(event ProgressEvent) {
	if s.Progress != nil {
		s.Progress(event)
	}
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// imageExt derives a file extension from an image URL's path. Query strings
// and fragments never contribute; unknown or missing extensions fall back
// to defaultImageExt.
func imageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultImageExt
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" {
		return defaultImageExt
	}
	return strings.ToLower(ext)
}
