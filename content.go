package bookscrape

import "strings"

// BlockKind identifies the variant of a ContentBlock.
type BlockKind string

// Content block kinds. Every block produced by a Normalizer is exactly one
// of these; unrecognized page elements produce no block at all.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
	BlockTable     BlockKind = "table"
	BlockCode      BlockKind = "code"
)

// ListKind identifies the ordering semantics of a list block.
type ListKind string

// List kinds.
const (
	ListOrdered   ListKind = "ordered"
	ListUnordered ListKind = "unordered"
)

// ContentBlock is one classified structural unit of page content. It is a
// value, not an identity: blocks carry no cross-references and only the
// fields relevant to their kind are populated.
type ContentBlock struct {
	Kind BlockKind `json:"type"`

	// Level is the heading level (1-6). Heading blocks only.
	Level int `json:"level,omitempty"`

	// Text holds the block's text. Heading, paragraph and code blocks.
	Text string `json:"text,omitempty"`

	// ListKind and Items describe list blocks.
	ListKind ListKind `json:"list_type,omitempty"`
	Items    []string `json:"items,omitempty"`

	// Rows holds table cell text in row/cell order. Table blocks only.
	Rows [][]string `json:"rows,omitempty"`

	// Language is an optional language hint. Code blocks only.
	Language string `json:"language,omitempty"`
}

// PlainText returns the block's textual content regardless of kind.
// List items are joined with newlines, table cells with spaces within a row
// and newlines between rows.
func (b ContentBlock) PlainText() string {
	switch b.Kind {
	case BlockList:
		return strings.Join(b.Items, "\n")
	case BlockTable:
		rows := make([]string, 0, len(b.Rows))
		for _, row := range b.Rows {
			rows = append(rows, strings.Join(row, " "))
		}
		return strings.Join(rows, "\n")
	default:
		return b.Text
	}
}

// Empty reports whether the block has no textual content. Empty blocks are
// never added to a ContentTree.
func (b ContentBlock) Empty() bool {
	return strings.TrimSpace(b.PlainText()) == ""
}

// ContentTree is the normalized content of one article: an ordered sequence
// of typed blocks (insertion order is document order and is semantically
// significant), the article's resolved images, and the whitespace-normalized
// concatenation of all textual content.
type ContentTree struct {
	Blocks  []ContentBlock `json:"structured"`
	Images  []ImageRecord  `json:"images"`
	RawText string         `json:"raw_text"`
}

// Append adds a block to the tree, discarding empty blocks. It returns true
// if the block was added. Nothing may reorder blocks after insertion.
func (t *ContentTree) Append(b ContentBlock) bool {
	if b.Empty() {
		return false
	}
	t.Blocks = append(t.Blocks, b)
	return true
}

// Rebuild recomputes RawText as the newline-joined plain text of all blocks
// in tree order. Normalizers call this once after the final block.
func (t *ContentTree) Rebuild() {
	parts := make([]string, 0, len(t.Blocks))
	for _, b := range t.Blocks {
		parts = append(parts, b.PlainText())
	}
	t.RawText = strings.Join(parts, "\n")
}

// Empty reports whether the tree holds no blocks.
func (t *ContentTree) Empty() bool {
	return len(t.Blocks) == 0
}

// ImageRecord is one unique image within an article. Two references to the
// same resolved source URL within one article share a single record; the
// first occurrence wins for alt text and caption.
type ImageRecord struct {
	// SourceURL is the absolute image URL, unique within the article.
	SourceURL string `json:"url"`

	// LocalPath is where the downloaded image was written. Empty when the
	// download failed; the record is kept regardless.
	LocalPath string `json:"local_path,omitempty"`

	AltText string `json:"alt_text,omitempty"`
	Caption string `json:"caption,omitempty"`

	// Error describes a download failure. Image errors never propagate to
	// the article or the book.
	Error string `json:"error,omitempty"`
}

// ImageRef is a raw image reference found in page markup, before
// deduplication and download.
type ImageRef struct {
	SourceURL string
	AltText   string
	Caption   string
}
