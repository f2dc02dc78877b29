// Package goquery provides DOM-based implementations of the bookscrape
// parsing interfaces: content normalization, book outline discovery, image
// scanning, and a heuristic content-region extractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mfilipek/bookscrape"
)

// blockSelector matches every element kind the normalizer classifies.
// Elements outside this set are skipped.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, ul, ol, pre, table"

// Ensure Normalizer implements bookscrape.Normalizer at compile time.
var _ bookscrape.Normalizer = (*Normalizer)(nil)

// Normalizer converts a page's content region into a typed block tree.
// It walks the markup in document order and classifies each structural
// element into exactly one block variant.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize parses the content HTML and returns the ordered block tree.
// Unexpected or empty markup degrades to an empty tree; parse problems are
// never surfaced as errors.
func (n *Normalizer) Normalize(contentHTML string) (*bookscrape.ContentTree, error) {
	tree := &bookscrape.ContentTree{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return tree, nil
	}

	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Skip elements nested inside an already-classified element
		// (a list inside a list item, a paragraph cell inside a table).
		// The outermost match owns the content.
		if sel.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		tree.Append(classify(sel))
	})

	tree.Rebuild()
	return tree, nil
}

// classify maps one matched element to its block variant.
func classify(sel *goquery.Selection) bookscrape.ContentBlock {
	tag := goquery.NodeName(sel)

	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return bookscrape.ContentBlock{
			Kind:  bookscrape.BlockHeading,
			Level: headingLevel(tag),
			Text:  collapseWhitespace(sel.Text()),
		}

	case "p":
		return bookscrape.ContentBlock{
			Kind: bookscrape.BlockParagraph,
			Text: collapseWhitespace(sel.Text()),
		}

	case "ul", "ol":
		kind := bookscrape.ListUnordered
		if tag == "ol" {
			kind = bookscrape.ListOrdered
		}
		return bookscrape.ContentBlock{
			Kind:     bookscrape.BlockList,
			ListKind: kind,
			Items:    listItems(sel),
		}

	case "table":
		return bookscrape.ContentBlock{
			Kind: bookscrape.BlockTable,
			Rows: tableRows(sel),
		}

	case "pre":
		return bookscrape.ContentBlock{
			Kind:     bookscrape.BlockCode,
			Text:     strings.Trim(sel.Text(), "\n"),
			Language: codeLanguage(sel),
		}
	}

	return bookscrape.ContentBlock{}
}

// headingLevel derives the level from the tag name, clamped to 1-6.
func headingLevel(tag string) int {
	level := int(tag[1] - '0')
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// listItems returns the text of each direct list entry. Nested lists are
// flattened into their parent item's text, which is what Text() yields for
// the whole subtree.
func listItems(sel *goquery.Selection) []string {
	var items []string
	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if text := collapseWhitespace(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

// tableRows returns cell text in row/cell order.
func tableRows(sel *goquery.Selection) [][]string {
	var rows [][]string
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, collapseWhitespace(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}

// codeLanguage extracts a language hint from a language-* or lang-* class
// on the pre element or a nested code element.
func codeLanguage(sel *goquery.Selection) string {
	candidates := []string{
		sel.AttrOr("class", ""),
		sel.Find("code").First().AttrOr("class", ""),
	}
	for _, classes := range candidates {
		for _, class := range strings.Fields(classes) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok {
				return lang
			}
			if lang, ok := strings.CutPrefix(class, "lang-"); ok {
				return lang
			}
		}
	}
	return ""
}

// collapseWhitespace trims the string and collapses internal whitespace
// runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
