// Package mock provides mock implementations of bookscrape interfaces
// for testing. Each mock delegates to caller-supplied functions.
package mock

import (
	"context"

	"github.com/mfilipek/bookscrape"
)

// Ensure mocks implement their interfaces at compile time.
var (
	_ bookscrape.Fetcher         = (*Fetcher)(nil)
	_ bookscrape.ImageDownloader = (*ImageDownloader)(nil)
	_ bookscrape.ImageStore      = (*ImageStore)(nil)
	_ bookscrape.Extractor       = (*Extractor)(nil)
	_ bookscrape.Normalizer      = (*Normalizer)(nil)
	_ bookscrape.OutlineParser   = (*OutlineParser)(nil)
	_ bookscrape.ImageScanner    = (*ImageScanner)(nil)
	_ bookscrape.RunService      = (*RunService)(nil)
)

// Fetcher is a mock implementation of bookscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error)
	CloseFn func() error
}

func (m *Fetcher) Fetch(ctx context.Context, url string, wait bookscrape.WaitPolicy) (string, error) {
	return m.FetchFn(ctx, url, wait)
}

func (m *Fetcher) Close() error {
	if m.CloseFn == nil {
		return nil
	}
	return m.CloseFn()
}

// ImageDownloader is a mock implementation of bookscrape.ImageDownloader.
type ImageDownloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (m *ImageDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	return m.DownloadFn(ctx, url)
}

// ImageStore is a mock implementation of bookscrape.ImageStore.
type ImageStore struct {
	SaveImageFn func(name string, data []byte) (string, error)
}

func (m *ImageStore) SaveImage(name string, data []byte) (string, error) {
	return m.SaveImageFn(name, data)
}

// Extractor is a mock implementation of bookscrape.Extractor.
type Extractor struct {
	ExtractFn func(markup string) (*bookscrape.ExtractResult, error)
}

func (m *Extractor) Extract(markup string) (*bookscrape.ExtractResult, error) {
	return m.ExtractFn(markup)
}

// Normalizer is a mock implementation of bookscrape.Normalizer.
type Normalizer struct {
	NormalizeFn func(contentHTML string) (*bookscrape.ContentTree, error)
}

func (m *Normalizer) Normalize(contentHTML string) (*bookscrape.ContentTree, error) {
	return m.NormalizeFn(contentHTML)
}

// OutlineParser is a mock implementation of bookscrape.OutlineParser.
type OutlineParser struct {
	ParseOutlineFn func(markup, pageURL string) (*bookscrape.Outline, error)
}

func (m *OutlineParser) ParseOutline(markup, pageURL string) (*bookscrape.Outline, error) {
	return m.ParseOutlineFn(markup, pageURL)
}

// ImageScanner is a mock implementation of bookscrape.ImageScanner.
type ImageScanner struct {
	ScanImagesFn func(markup, pageURL string) ([]bookscrape.ImageRef, error)
}

func (m *ImageScanner) ScanImages(markup, pageURL string) ([]bookscrape.ImageRef, error) {
	return m.ScanImagesFn(markup, pageURL)
}

// RunService is a mock implementation of bookscrape.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *bookscrape.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*bookscrape.Run, error)
	FindRunsFn    func(ctx context.Context, filter bookscrape.RunFilter) ([]*bookscrape.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (m *RunService) CreateRun(ctx context.Context, run *bookscrape.Run) error {
	return m.CreateRunFn(ctx, run)
}

func (m *RunService) FindRunByID(ctx context.Context, id string) (*bookscrape.Run, error) {
	return m.FindRunByIDFn(ctx, id)
}

func (m *RunService) FindRuns(ctx context.Context, filter bookscrape.RunFilter) ([]*bookscrape.Run, error) {
	return m.FindRunsFn(ctx, filter)
}

func (m *RunService) DeleteRun(ctx context.Context, id string) error {
	return m.DeleteRunFn(ctx, id)
}
