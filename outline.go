package bookscrape

// Outline is the discovered structure of a book's landing page: its title,
// description, and the ordered chapter/article hierarchy. Chapter and
// article order is the traversal order of the table of contents.
type Outline struct {
	Title       string
	Description string
	Chapters    []OutlineChapter
}

// OutlineChapter is one discovered chapter and its ordered article links.
type OutlineChapter struct {
	Title    string
	Articles []ArticleLink
}

// ArticleLink points at one article page. URLs are absolute and unique
// within the outline; duplicates are collapsed during parsing, before
// numbering, so chapter/article numbers stay dense.
type ArticleLink struct {
	Title string
	URL   string
}

// OutlineParser discovers a book's chapter and article structure from its
// landing page markup.
type OutlineParser interface {
	// ParseOutline returns the book outline. Relative article links are
	// resolved against baseURL. An outline with no chapters is a valid
	// result; deciding whether that is fatal belongs to the caller.
	ParseOutline(markup string, baseURL string) (*Outline, error)
}
