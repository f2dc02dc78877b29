package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/fs"
	"github.com/mfilipek/bookscrape/scrape"
	"github.com/mfilipek/bookscrape/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Runs    bookscrape.RunService
	Scraper *scrape.Scraper
	Writer  *fs.Writer
	Now     func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape a shared book and export its content"`
	Runs   RunsCmd   `cmd:"" help:"Inspect past scrape runs"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL       string        `arg:"" help:"Shared book URL"`
	Output    string        `short:"o" default:"scraped_content" help:"Output directory"`
	Wait      time.Duration `short:"w" default:"5s" help:"Render wait after page load"`
	Delay     time.Duration `short:"d" default:"1s" help:"Politeness delay between article fetches"`
	Extractor string        `short:"e" default:"trafilatura" enum:"trafilatura,readability,heuristic" help:"Content extraction engine"`
	Static    bool          `short:"s" help:"Fetch over plain HTTP instead of a browser session"`
}

// RunsCmd groups the run-history subcommands.
type RunsCmd struct {
	List   RunsListCmd   `cmd:"" default:"1" help:"List recorded runs"`
	Show   RunsShowCmd   `cmd:"" help:"Show one run in detail"`
	Delete RunsDeleteCmd `cmd:"" help:"Delete a run record"`
}

// RunsListCmd is the "runs list" subcommand.
type RunsListCmd struct {
	URL    string `help:"Filter by book URL"`
	Status string `help:"Filter by status (ok or error)"`
	Limit  int    `default:"20" help:"Maximum runs to show"`
	Offset int    `help:"Runs to skip"`
}

// RunsShowCmd is the "runs show" subcommand.
type RunsShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// RunsDeleteCmd is the "runs delete" subcommand.
type RunsDeleteCmd struct {
	ID string `arg:"" help:"Run ID"`
}
