package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/bloom"
)

// Sizing for the duplicate-article bloom filter. A table of contents is
// small; the filter is sized far above any plausible book so the
// false-positive rate stays negligible.
const (
	outlineExpectedURLs      = 10000
	outlineFalsePositiveRate = 0.0001
)

// DefaultBookTitle is used when no title can be found on the landing page.
const DefaultBookTitle = "Untitled Book"

var (
	tocClassRe     = regexp.MustCompile(`(?i)toc|table.?of.?contents|sidebar|navigation|chapter|article.?list`)
	chapterClassRe = regexp.MustCompile(`(?i)chapter|section|heading`)
	descClassRe    = regexp.MustCompile(`(?i)description|summary`)
	titleClassRe   = regexp.MustCompile(`(?i)book.?title|title`)
	titleSuffixRe  = regexp.MustCompile(`(?i)\s*-\s*zoho\s+learn.*$`)
)

// Ensure OutlineParser implements bookscrape.OutlineParser at compile time.
var _ bookscrape.OutlineParser = (*OutlineParser)(nil)

// OutlineParser discovers a book's chapter/article hierarchy from its
// landing page. Discovery is heuristic: it looks for a table-of-contents
// container, then for chapter headings with adjacent article lists, and
// falls back to treating every in-scope link as a single chapter.
type OutlineParser struct{}

// NewOutlineParser creates a new OutlineParser.
func NewOutlineParser() *OutlineParser {
	return &OutlineParser{}
}

// ParseOutline extracts the book title, description and ordered
// chapter/article structure. Duplicate article URLs are collapsed before
// numbering so downstream numbers stay dense.
func (p *OutlineParser) ParseOutline(markup string, baseURL string) (*bookscrape.Outline, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "invalid book URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, bookscrape.Errorf(bookscrape.EINVALID, "failed to parse landing page: %v", err)
	}

	outline := &bookscrape.Outline{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
	}

	container := findTOCContainer(doc)
	seen := bloom.NewFilter(outlineExpectedURLs, outlineFalsePositiveRate)

	outline.Chapters = extractChapters(container, base, seen)
	if len(outline.Chapters) == 0 {
		outline.Chapters = fallbackChapter(container, base, seen)
	}

	return outline, nil
}

// extractTitle tries title-classed h1 elements, any h1, the document title,
// and the og:title meta tag, in that order.
func extractTitle(doc *goquery.Document) string {
	var title string

	doc.Find("h1").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if titleClassRe.MatchString(sel.AttrOr("class", "")) {
			title = collapseWhitespace(sel.Text())
			return title == ""
		}
		return true
	})
	if title == "" {
		title = collapseWhitespace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = collapseWhitespace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	if title == "" {
		return DefaultBookTitle
	}
	return titleSuffixRe.ReplaceAllString(title, "")
}

// extractDescription tries meta description tags, then description-classed
// elements.
func extractDescription(doc *goquery.Document) string {
	if desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")); desc != "" {
		return desc
	}
	if desc := strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", "")); desc != "" {
		return desc
	}

	var desc string
	doc.Find("div, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if descClassRe.MatchString(sel.AttrOr("class", "")) {
			desc = collapseWhitespace(sel.Text())
			return desc == ""
		}
		return true
	})
	return desc
}

// findTOCContainer locates the table-of-contents region, falling back to
// any nav or aside, then the whole document.
func findTOCContainer(doc *goquery.Document) *goquery.Selection {
	var container *goquery.Selection

	doc.Find("div, nav, aside, ul").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if tocClassRe.MatchString(sel.AttrOr("class", "")) {
			container = sel
			return false
		}
		return true
	})
	if container != nil {
		return container
	}

	if nav := doc.Find("nav").First(); nav.Length() > 0 {
		return nav
	}
	if aside := doc.Find("aside").First(); aside.Length() > 0 {
		return aside
	}
	return doc.Selection
}

// extractChapters finds chapter-like headings and collects each one's
// article links from an adjacent or nested list. Chapters without articles
// are dropped, matching the behavior of the content platform's own TOC.
func extractChapters(container *goquery.Selection, base *url.URL, seen *bloom.Filter) []bookscrape.OutlineChapter {
	var chapters []bookscrape.OutlineChapter

	container.Find("h2, h3, h4, div, li").Each(func(_ int, heading *goquery.Selection) {
		if !chapterClassRe.MatchString(heading.AttrOr("class", "")) {
			return
		}
		title := headingOwnText(heading)
		if title == "" {
			return
		}

		list := heading.NextFiltered("ul, ol")
		if list.Length() == 0 {
			list = heading.Find("ul, ol").First()
		}
		if list.Length() == 0 {
			return
		}

		articles := collectArticleLinks(list, base, seen, false)
		if len(articles) == 0 {
			return
		}

		chapters = append(chapters, bookscrape.OutlineChapter{
			Title:    title,
			Articles: articles,
		})
	})

	return chapters
}

// fallbackChapter groups every in-scope link under a single chapter when no
// chapter structure could be found.
func fallbackChapter(container *goquery.Selection, base *url.URL, seen *bloom.Filter) []bookscrape.OutlineChapter {
	articles := collectArticleLinks(container, base, seen, true)
	if len(articles) == 0 {
		return nil
	}
	return []bookscrape.OutlineChapter{{
		Title:    "Main Content",
		Articles: articles,
	}}
}

// collectArticleLinks gathers article links in document order, resolving
// relative URLs and collapsing duplicates. When sameHostOnly is set,
// off-site links are skipped; the structured chapter path trusts the TOC
// list instead.
func collectArticleLinks(scope *goquery.Selection, base *url.URL, seen *bloom.Filter, sameHostOnly bool) []bookscrape.ArticleLink {
	var links []bookscrape.ArticleLink

	scope.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if sameHostOnly && !isSameHost(base, resolved) {
			return
		}

		title := collapseWhitespace(a.Text())
		if title == "" {
			return
		}

		if seen.Test(resolved) {
			return
		}
		seen.Add(resolved)

		links = append(links, bookscrape.ArticleLink{
			Title: title,
			URL:   resolved,
		})
	})

	return links
}

// headingOwnText returns the heading's text with any nested list text
// removed, so a chapter <li> that contains its article list still yields a
// clean title.
func headingOwnText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("ul, ol").Remove()
	return collapseWhitespace(clone.Text())
}

// resolveURL resolves a relative URL against a base URL, stripping the
// fragment for deduplication.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
