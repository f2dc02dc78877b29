package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mfilipek/bookscrape"
	"github.com/mfilipek/bookscrape/fs"
	"github.com/mfilipek/bookscrape/goquery"
	bshttp "github.com/mfilipek/bookscrape/http"
	"github.com/mfilipek/bookscrape/readability"
	"github.com/mfilipek/bookscrape/rod"
	"github.com/mfilipek/bookscrape/scrape"
	bsslog "github.com/mfilipek/bookscrape/slog"
	"github.com/mfilipek/bookscrape/sqlite"
	"github.com/mfilipek/bookscrape/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// RunService for end-to-end testing.
	RunService bookscrape.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookscrape"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BOOKSCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService

	// Wire the scrape pipeline only when scraping; run-history commands
	// don't need a browser session.
	if cmd == "scrape" {
		writer, err := fs.NewWriter(cli.Scrape.Output)
		if err != nil {
			return err
		}
		deps.Writer = writer

		var fetcher bookscrape.Fetcher
		if cli.Scrape.Static {
			fetcher = bshttp.NewFetcher()
		} else {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static for plain HTTP")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browserFetcher
		}
		defer fetcher.Close()

		if cli.Verbose {
			fetcher = bsslog.NewLoggingFetcher(fetcher, deps.Logger)
		}

		var extractor bookscrape.Extractor
		switch cli.Scrape.Extractor {
		case "readability":
			extractor = readability.NewExtractor()
		case "heuristic":
			extractor = goquery.NewExtractor()
		default:
			extractor = trafilatura.NewExtractor()
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher:    fetcher,
			Extractor:  extractor,
			Normalizer: goquery.NewNormalizer(),
			Outline:    goquery.NewOutlineParser(),
			Images:     goquery.NewImageScanner(),
			Downloader: bshttp.NewFetcher(),
			Store:      writer,
			Wait:       bookscrape.WaitPolicy{RenderDelay: cli.Scrape.Wait},
			Pacer:      scrape.NewPacer(cli.Scrape.Delay),
			Logger:     deps.Logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("BOOKSCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookscrape.db"
	}
	dir := filepath.Join(home, ".bookscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "bookscrape.db")
}
