// Package fs persists scrape output to the local filesystem: the two JSON
// document views, downloaded images, and error reports for failed runs.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/export"
)

// timestampLayout is the filename timestamp format.
const timestampLayout = "20060102_150405"

// fallbackTitle names output files when a book has no usable title.
const fallbackTitle = "scraped_book"

// Ensure Writer implements bookscrape.ImageStore at compile time.
var _ bookscrape.ImageStore = (*Writer)(nil)

// Writer persists scrape output under a single output directory. Images go
// to an images/ subdirectory; documents and error reports sit at the top.
type Writer struct {
	outputDir string
}

// NewWriter creates a Writer rooted at outputDir, creating the directory
// tree if needed.
func NewWriter(outputDir string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Join(outputDir, "images"), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{outputDir: outputDir}, nil
}

// OutputDir returns the root output directory.
func (w *Writer) OutputDir() string {
	return w.outputDir
}

// WriteComplete writes the complete document view and returns its path.
// The filename is derived from the book title and scrape timestamp.
func (w *Writer) WriteComplete(doc export.CompleteDocument) (string, error) {
	name := fmt.Sprintf("%s_%s.json", SafeTitle(doc.Title), doc.ScrapedAt.Format(timestampLayout))
	return w.writeJSON(name, doc)
}

// WriteAIReady writes the AI-ready document view and returns its path.
func (w *Writer) WriteAIReady(doc export.AIReadyDocument) (string, error) {
	name := fmt.Sprintf("%s_ai_ready_%s.json", SafeTitle(doc.BookTitle), doc.ScrapedAt.Format(timestampLayout))
	return w.writeJSON(name, doc)
}

// ErrorReport is the document written when a scrape fails before any
// content could be assembled.
type ErrorReport struct {
	Error     string    `json:"error"`
	URL       string    `json:"url"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// WriteError writes an error report for a failed scrape and returns its path.
func (w *Writer) WriteError(report ErrorReport) (string, error) {
	name := fmt.Sprintf("scrape_error_%s.json", report.ScrapedAt.Format(timestampLayout))
	return w.writeJSON(name, report)
}

// SaveImage writes image bytes under images/ and returns the written path.
func (w *Writer) SaveImage(name string, data []byte) (string, error) {
	path := filepath.Join(w.outputDir, "images", name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", name, err)
	}
	return path, nil
}

func (w *Writer) writeJSON(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return path, nil
}

var unsafeTitleChars = regexp.MustCompile(`[^\w\s-]`)

// SafeTitle converts a book title into a filesystem-safe filename stem:
// punctuation is stripped and spaces become underscores.
func SafeTitle(title string) string {
	safe := unsafeTitleChars.ReplaceAllString(title, "")
	safe = strings.Join(strings.Fields(safe), "_")
	if safe == "" {
		return fallbackTitle
	}
	return safe
}
