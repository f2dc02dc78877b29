// Package readability provides an alternative content-region extractor
// built on go-readability, selectable from the CLI.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/mfilipek/bookscrape"
)

// Ensure Extractor implements bookscrape.Extractor at compile time.
var _ bookscrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract an article's main content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw markup and returns the main content region.
func (e *Extractor) Extract(markup string) (*bookscrape.ExtractResult, error) {
	if markup == "" {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "empty markup input")
	}

	article, err := readability.FromReader(strings.NewReader(markup), nil)
	if err != nil {
		return nil, err
	}

	return &bookscrape.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
