package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mfilipek/bookscrape"
)

// maxCaptionLength bounds the adjacent-text caption heuristic; longer
// sibling text is body content, not a caption.
const maxCaptionLength = 200

// Ensure ImageScanner implements bookscrape.ImageScanner at compile time.
var _ bookscrape.ImageScanner = (*ImageScanner)(nil)

// ImageScanner finds image references in page markup in document order.
type ImageScanner struct{}

// NewImageScanner creates a new ImageScanner.
func NewImageScanner() *ImageScanner {
	return &ImageScanner{}
}

// ScanImages returns every image reference in document order with source
// URLs resolved against the page URL. Lazy-load sources (data-src) are
// honored when src is absent. Deduplication is the resolver's concern, not
// the scanner's.
func (s *ImageScanner) ScanImages(markup string, pageURL string) ([]bookscrape.ImageRef, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "failed to parse markup: %v", err)
	}

	var refs []bookscrape.ImageRef
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src == "" {
			src = img.AttrOr("data-src", "")
		}
		if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
			return
		}

		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}

		alt := strings.TrimSpace(img.AttrOr("alt", ""))
		if alt == "" {
			alt = strings.TrimSpace(img.AttrOr("title", ""))
		}

		refs = append(refs, bookscrape.ImageRef{
			SourceURL: resolved,
			AltText:   alt,
			Caption:   findCaption(img),
		})
	})

	return refs, nil
}

// findCaption looks for a figcaption on an enclosing figure, then for short
// adjacent text that reads like a caption.
func findCaption(img *goquery.Selection) string {
	if figure := img.Closest("figure"); figure.Length() > 0 {
		if caption := collapseWhitespace(figure.Find("figcaption").First().Text()); caption != "" {
			return caption
		}
	}

	sibling := img.NextFiltered("p, div, span").First()
	if sibling.Length() > 0 {
		if text := collapseWhitespace(sibling.Text()); text != "" && len(text) < maxCaptionLength {
			return text
		}
	}

	return ""
}
