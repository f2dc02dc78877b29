// Package bookscrape extracts structured educational content from shared
// online books. It discovers a book's chapter/article hierarchy, normalizes
// each article's markup into a typed content tree, resolves and deduplicates
// embedded images, derives learning metadata (word counts, reading time,
// difficulty, spaced-repetition intervals), and exports the result as two
// JSON documents: a complete mirror of the book and a flattened, AI-ready
// list of learning units.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package bookscrape
