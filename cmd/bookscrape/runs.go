package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/mfilipek/bookscrape"
)

// Run executes the "runs list" command.
func (c *RunsListCmd) Run(deps *Dependencies) error {
	filter := bookscrape.RunFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.Status != "" {
		filter.Status = &c.Status
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookscrape.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tTITLE\tARTICLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			run.ID, run.StartedAt.Format(time.RFC3339), run.Status, run.Title, run.TotalArticles)
	}
	return w.Flush()
}

// Run executes the "runs show" command.
func (c *RunsShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:         %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "URL:        %s\n", run.URL)
	fmt.Fprintf(deps.Stdout, "Title:      %s\n", run.Title)
	fmt.Fprintf(deps.Stdout, "Status:     %s\n", run.Status)
	if run.Error != "" {
		fmt.Fprintf(deps.Stdout, "Error:      %s\n", run.Error)
	}
	fmt.Fprintf(deps.Stdout, "Chapters:   %d\n", run.TotalChapters)
	fmt.Fprintf(deps.Stdout, "Articles:   %d\n", run.TotalArticles)
	fmt.Fprintf(deps.Stdout, "Images:     %d\n", run.TotalImages)
	fmt.Fprintf(deps.Stdout, "Words:      %d\n", run.TotalWords)
	if run.OutputPath != "" {
		fmt.Fprintf(deps.Stdout, "Output:     %s\n", run.OutputPath)
	}
	fmt.Fprintf(deps.Stdout, "Started:    %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "Finished:   %s\n", run.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "Duration:   %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Second))

	return nil
}

// Run executes the "runs delete" command.
func (c *RunsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
