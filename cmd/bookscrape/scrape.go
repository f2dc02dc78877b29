package main

import (
	"fmt"

	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/export"
	"github.com/mfilipek/bookscrape/fs"
	"github.com/mfilipek/bookscrape/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	startedAt := deps.Now()

	deps.Scraper.Progress = func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d articles\n", event.Total)
		case scrape.ProgressArticleCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		case scrape.ProgressArticleFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] FAILED %s: %v\n", event.Completed, event.Total, event.URL, event.Error)
		}
	}

	book, err := deps.Scraper.ScrapeBook(deps.Ctx, c.URL)
	if err != nil {
		if path, werr := deps.Writer.WriteError(fs.ErrorReport{
			Error:     err.Error(),
			URL:       c.URL,
			ScrapedAt: startedAt,
		}); werr == nil {
			fmt.Fprintf(deps.Stderr, "error report written to %s\n", path)
		}

		c.record(deps, &bookscrape.Run{
			URL:        c.URL,
			Status:     bookscrape.RunStatusError,
			Error:      err.Error(),
			StartedAt:  startedAt,
			FinishedAt: deps.Now(),
		})

		fmt.Fprintf(deps.Stderr, "error: %s\n", bookscrape.ErrorMessage(err))
		return err
	}

	complete, aiReady := export.Export(book)

	completePath, err := deps.Writer.WriteComplete(complete)
	if err != nil {
		return err
	}
	aiReadyPath, err := deps.Writer.WriteAIReady(aiReady)
	if err != nil {
		return err
	}

	c.record(deps, &bookscrape.Run{
		URL:           c.URL,
		Title:         book.Title,
		Status:        bookscrape.RunStatusOK,
		TotalChapters: len(book.Chapters),
		TotalArticles: book.TotalArticles(),
		TotalImages:   book.TotalImages(),
		TotalWords:    aiReady.Summary.TotalWords,
		OutputPath:    completePath,
		StartedAt:     startedAt,
		FinishedAt:    deps.Now(),
	})

	fmt.Fprintf(deps.Stdout, "Scraped %q: %d chapters, %d articles, %d images\n",
		book.Title, len(book.Chapters), book.TotalArticles(), book.TotalImages())
	fmt.Fprintf(deps.Stdout, "  %s\n  %s\n", completePath, aiReadyPath)

	return nil
}

// record persists the run history entry. History is bookkeeping: a failure
// here is reported but never fails the scrape itself.
func (c *ScrapeCmd) record(deps *Dependencies, run *bookscrape.Run) {
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: failed to record run: %v\n", err)
	}
}
