// Package trafilatura provides the default content-region extractor,
// built on go-trafilatura's boilerplate removal.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mfilipek/bookscrape"
	"golang.org/x/net/html"
)

// Ensure Extractor implements bookscrape.Extractor at compile time.
var _ bookscrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract an article's main content from
// raw page markup.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(markup), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &bookscrape.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
