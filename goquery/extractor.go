package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mfilipek/bookscrape"
)

var contentClassRe = regexp.MustCompile(`(?i)content|article|main|body`)

// Ensure Extractor implements bookscrape.Extractor at compile time.
var _ bookscrape.Extractor = (*Extractor)(nil)

// Extractor locates the main content region using element heuristics.
// It is the fallback for pages where semantic extraction (trafilatura,
// readability) finds nothing; unlike those, it never strips structure from
// inside the region it picks.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the first plausible content region: an article or main
// element, then content-classed containers, then the body.
func (e *Extractor) Extract(markup string) (*bookscrape.ExtractResult, error) {
	if markup == "" {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "empty markup input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "failed to parse markup: %v", err)
	}

	region := findContentRegion(doc)
	contentHTML, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, err
	}

	title := collapseWhitespace(doc.Find("h1").First().Text())
	if title == "" {
		title = collapseWhitespace(doc.Find("title").First().Text())
	}

	return &bookscrape.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

func findContentRegion(doc *goquery.Document) *goquery.Selection {
	if sel := doc.Find("article").First(); sel.Length() > 0 {
		return sel
	}

	var classed *goquery.Selection
	doc.Find("div, section").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if contentClassRe.MatchString(sel.AttrOr("class", "")) ||
			contentClassRe.MatchString(sel.AttrOr("id", "")) {
			classed = sel
			return false
		}
		return true
	})
	if classed != nil {
		return classed
	}

	if sel := doc.Find("main").First(); sel.Length() > 0 {
		return sel
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}
