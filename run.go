package bookscrape

import (
	"context"
	"time"
)

// Run statuses.
const (
	RunStatusOK    = "ok"
	RunStatusError = "error"
)

// Run records one completed scrape invocation for history purposes.
// Runs are bookkeeping only; the durable output of a scrape is the pair of
// exported JSON documents.
type Run struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	TotalChapters int       `json:"totalChapters"`
	TotalArticles int       `json:"totalArticles"`
	TotalImages   int       `json:"totalImages"`
	TotalWords    int       `json:"totalWords"`
	OutputPath    string    `json:"outputPath"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "run URL required")
	}
	if r.Status != RunStatusOK && r.Status != RunStatusError {
		return Errorf(EINVALID, "run status must be %q or %q", RunStatusOK, RunStatusError)
	}
	return nil
}

// RunService represents a service for recording and querying scrape runs.
type RunService interface {
	// CreateRun records a completed run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run record.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID     *string `json:"id"`
	URL    *string `json:"url"`
	Status *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
