package bookscrape

// ExtractResult holds the content region extracted from a page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor locates the main content region of a page, removing boilerplate.
type Extractor interface {
	// Extract processes raw markup and returns the main content region.
	// The content HTML has boilerplate removed but preserves structure.
	Extract(markup string) (*ExtractResult, error)
}

// Normalizer converts a page's content region into a typed block tree.
//
// Implementations walk the markup in document order and classify each
// structural element into exactly one ContentBlock variant; elements not
// matching any known pattern are skipped, never raised. Unexpected or empty
// markup degrades to an empty tree rather than an error.
type Normalizer interface {
	Normalize(contentHTML string) (*ContentTree, error)
}

// ImageScanner finds image references in content-region markup, in document
// order, with source URLs resolved to absolute form against the page URL.
// The scan runs over the extracted content markup rather than the
// normalized blocks, so images outside classified elements are still found
// while site chrome stays out of scope.
type ImageScanner interface {
	ScanImages(markup string, pageURL string) ([]ImageRef, error)
}
