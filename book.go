package bookscrape

import "time"

// Book is the top-level scraped unit, corresponding to one shared book.
// A Book and everything under it is constructed once during a scrape run
// and is immutable after assembly.
type Book struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ScrapedAt   time.Time  `json:"scraped_at"`
	Chapters    []*Chapter `json:"chapters"`
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if b.URL == "" {
		return Errorf(EINVALID, "book URL required")
	}
	return nil
}

// TotalArticles returns the number of articles across all chapters,
// including degraded ones.
func (b *Book) TotalArticles() int {
	var n int
	for _, ch := range b.Chapters {
		n += len(ch.Articles)
	}
	return n
}

// TotalImages returns the number of unique resolved images across all
// articles. Records with failed downloads still count as resolved.
func (b *Book) TotalImages() int {
	var n int
	for _, ch := range b.Chapters {
		for _, art := range ch.Articles {
			n += len(art.Content.Images)
		}
	}
	return n
}

// Chapter is an ordered grouping of articles within a book. Chapter order
// is discovery order and is never re-sorted.
type Chapter struct {
	// Number is 1-based and dense, assigned by discovery order.
	Number   int        `json:"chapter_number"`
	Title    string     `json:"title"`
	Articles []*Article `json:"articles"`
}

// Article is the smallest independently fetched content unit. It is owned
// exclusively by its chapter. A failed article still occupies its number:
// its content is an empty tree and Metadata.Error is set.
type Article struct {
	// Number is 1-based within the chapter, assigned by discovery order.
	Number  int    `json:"article_number"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content ContentTree `json:"content"`

	// ContentHash is a hash of the normalized raw text, useful for change
	// detection across runs.
	ContentHash string `json:"content_hash,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Failed reports whether the article was recorded as degraded.
func (a *Article) Failed() bool {
	return a.Metadata.Error != ""
}
