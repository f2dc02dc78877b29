package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mfilipek/bookscrape"
)

// Compile-time interface verification.
var _ bookscrape.RunService = (*RunService)(nil)

// RunService implements bookscrape.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a completed scrape run.
func (s *RunService) CreateRun(ctx context.Context, run *bookscrape.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, url, title, status, error, total_chapters, total_articles,
			total_images, total_words, output_path, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.URL, run.Title, run.Status, run.Error, run.TotalChapters, run.TotalArticles,
		run.TotalImages, run.TotalWords, run.OutputPath,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339))

	return err
}

const runColumns = `id, url, title, status, error, total_chapters, total_articles,
	total_images, total_words, output_path, started_at, finished_at`

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*bookscrape.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, bookscrape.Errorf(bookscrape.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter bookscrape.RunFilter) ([]*bookscrape.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY started_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*bookscrape.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run record.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return bookscrape.Errorf(bookscrape.ENOTFOUND, "run not found")
	}

	return nil
}

// scanRun reads one run from a row scan function, parsing timestamps.
func scanRun(scan func(dest ...any) error) (*bookscrape.Run, error) {
	var run bookscrape.Run
	var startedAt, finishedAt string

	if err := scan(&run.ID, &run.URL, &run.Title, &run.Status, &run.Error,
		&run.TotalChapters, &run.TotalArticles, &run.TotalImages, &run.TotalWords,
		&run.OutputPath, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	var parseErr error
	run.StartedAt, parseErr = time.Parse(time.RFC3339, startedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", parseErr)
	}
	run.FinishedAt, parseErr = time.Parse(time.RFC3339, finishedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse finished_at: %w", parseErr)
	}

	return &run, nil
}
