// Package export projects an assembled Book into its two durable JSON
// views: the complete document mirroring the full hierarchy, and the
// AI-ready document flattening articles into denormalized learning units.
// Export is a pure projection; it performs no I/O.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfilipek/bookscrape"
)

// ScraperVersion is stamped into every complete document.
const ScraperVersion = "1.0"

// CompleteDocument mirrors the Book hierarchy one-to-one with a trailing
// summary block.
type CompleteDocument struct {
	URL         string                `json:"url"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	ScrapedAt   time.Time             `json:"scraped_at"`
	Chapters    []*bookscrape.Chapter `json:"chapters"`
	Metadata    DocumentMetadata      `json:"metadata"`
}

// DocumentMetadata is the summary block of a complete document.
type DocumentMetadata struct {
	TotalChapters         int    `json:"total_chapters"`
	TotalArticles         int    `json:"total_articles"`
	TotalImages           int    `json:"total_images"`
	ScraperVersion        string `json:"scraper_version"`
	SpacedRepetitionReady bool   `json:"spaced_repetition_ready"`
}

// AIReadyDocument flattens every article into a learning unit, in chapter
// then article order, for downstream question generation.
type AIReadyDocument struct {
	BookTitle       string         `json:"book_title"`
	BookDescription string         `json:"book_description,omitempty"`
	ScrapedAt       time.Time      `json:"scraped_at"`
	LearningUnits   []LearningUnit `json:"learning_units"`
	Summary         Summary        `json:"summary"`
}

// LearningUnit is the denormalized projection of one article.
type LearningUnit struct {
	ID                string                    `json:"id"`
	Chapter           string                    `json:"chapter"`
	ChapterNumber     int                       `json:"chapter_number"`
	Title             string                    `json:"title"`
	Content           string                    `json:"content"`
	StructuredContent []bookscrape.ContentBlock `json:"structured_content"`
	Images            []bookscrape.ImageRecord  `json:"images"`
	Metadata          UnitMetadata              `json:"metadata"`
	Context           UnitContext               `json:"context"`
}

// UnitMetadata is the learning metadata carried by a unit.
type UnitMetadata struct {
	WordCount                   int                   `json:"word_count"`
	EstimatedReadingTimeMinutes int                   `json:"estimated_reading_time_minutes"`
	Difficulty                  bookscrape.Difficulty `json:"difficulty"`
	SpacedRepetitionIntervals   []int                 `json:"spaced_repetition_intervals"`
}

// UnitContext situates a unit within the book. PreviousChapter is the title
// of the chapter preceding the unit's chapter, nil for the first chapter.
type UnitContext struct {
	PreviousChapter *string `json:"previous_chapter"`
	SourceURL       string  `json:"source_url"`
}

// Summary aggregates statistics across all learning units.
type Summary struct {
	TotalLearningUnits               int `json:"total_learning_units"`
	TotalChapters                    int `json:"total_chapters"`
	TotalImages                      int `json:"total_images"`
	TotalWords                       int `json:"total_words"`
	EstimatedTotalReadingTimeMinutes int `json:"estimated_total_reading_time_minutes"`
}

// Export derives both document views from a Book.
func Export(book *bookscrape.Book) (CompleteDocument, AIReadyDocument) {
	return Complete(book), AIReady(book)
}

// Complete builds the complete document view.
func Complete(book *bookscrape.Book) CompleteDocument {
	return CompleteDocument{
		URL:         book.URL,
		Title:       book.Title,
		Description: book.Description,
		ScrapedAt:   book.ScrapedAt,
		Chapters:    book.Chapters,
		Metadata: DocumentMetadata{
			TotalChapters:         len(book.Chapters),
			TotalArticles:         book.TotalArticles(),
			TotalImages:           book.TotalImages(),
			ScraperVersion:        ScraperVersion,
			SpacedRepetitionReady: true,
		},
	}
}

// AIReady builds the flattened learning-unit view.
func AIReady(book *bookscrape.Book) AIReadyDocument {
	doc := AIReadyDocument{
		BookTitle:       book.Title,
		BookDescription: book.Description,
		ScrapedAt:       book.ScrapedAt,
		LearningUnits:   []LearningUnit{},
	}

	for i, chapter := range book.Chapters {
		var previous *string
		if i > 0 {
			title := book.Chapters[i-1].Title
			previous = &title
		}

		for _, article := range chapter.Articles {
			unit := LearningUnit{
				ID:                fmt.Sprintf("ch%d_art%d", chapter.Number, article.Number),
				Chapter:           chapter.Title,
				ChapterNumber:     chapter.Number,
				Title:             article.Title,
				Content:           RenderBlocks(article.Content.Blocks),
				StructuredContent: article.Content.Blocks,
				Images:            article.Content.Images,
				Metadata: UnitMetadata{
					WordCount:                   article.Metadata.WordCount,
					EstimatedReadingTimeMinutes: article.Metadata.EstimatedReadingTimeMinutes,
					Difficulty:                  article.Metadata.Difficulty,
					SpacedRepetitionIntervals:   article.Metadata.SpacedRepetition.SuggestedIntervals,
				},
				Context: UnitContext{
					PreviousChapter: previous,
					SourceURL:       article.URL,
				},
			}

			doc.Summary.TotalWords += unit.Metadata.WordCount
			doc.Summary.EstimatedTotalReadingTimeMinutes += unit.Metadata.EstimatedReadingTimeMinutes
			doc.LearningUnits = append(doc.LearningUnits, unit)
		}
	}

	doc.Summary.TotalLearningUnits = len(doc.LearningUnits)
	doc.Summary.TotalChapters = len(book.Chapters)
	doc.Summary.TotalImages = book.TotalImages()

	return doc
}

// RenderBlocks flattens a block sequence into readable text for language
// model consumption, preserving block order.
func RenderBlocks(blocks []bookscrape.ContentBlock) string {
	parts := make([]string, 0, len(blocks))

	for _, b := range blocks {
		switch b.Kind {
		case bookscrape.BlockHeading:
			parts = append(parts, fmt.Sprintf("\n%s %s\n", strings.Repeat("#", b.Level), b.Text))
		case bookscrape.BlockParagraph:
			parts = append(parts, b.Text)
		case bookscrape.BlockList:
			prefix := "•"
			if b.ListKind == bookscrape.ListOrdered {
				prefix = "1."
			}
			for _, item := range b.Items {
				parts = append(parts, fmt.Sprintf("%s %s", prefix, item))
			}
		case bookscrape.BlockCode:
			parts = append(parts, fmt.Sprintf("\n```%s\n%s\n```\n", b.Language, b.Text))
		case bookscrape.BlockTable:
			for _, row := range b.Rows {
				parts = append(parts, strings.Join(row, " | "))
			}
		}
	}

	return strings.Join(parts, "\n")
}
