package wikihtml

import (
	"context"
	"time"
)

// Run is one invocation of the converter recorded in the catalog.
type Run struct {
	ID        string    `json:"id"`
	Inputs    string    `json:"inputs"` // newline separated dump paths
	OutputDir string    `json:"outputDir"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.OutputDir == "" {
		return Errorf(EINVALID, "run output directory required")
	}
	return nil
}

// PageStatus is the outcome of processing one page.
type PageStatus string

// PageStatus values.
const (
	StatusRendered PageStatus = "rendered"
	StatusExcluded PageStatus = "excluded" // meta or file namespace
	StatusSkipped  PageStatus = "skipped"  // not wikitext
	StatusFailed   PageStatus = "failed"
)

// PageRecord is the catalog entry for one page of a run.
type PageRecord struct {
	ID          string         `json:"id"`
	RunID       string         `json:"runId"`
	Title       string         `json:"title"`
	Namespace   int            `json:"namespace"`
	Class       NamespaceClass `json:"class"`
	Status      PageStatus     `json:"status"`
	FileName    string         `json:"fileName"`
	ContentHash string         `json:"contentHash"`
	Bytes       int            `json:"bytes"`
	Sections    int            `json:"sections"`
	Position    int            `json:"position"`
	Error       string         `json:"error"`
}

// Validate returns an error if the record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.RunID == "" {
		return Errorf(EINVALID, "page record run ID required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "page record title required")
	}
	switch p.Status {
	case StatusRendered, StatusExcluded, StatusSkipped, StatusFailed:
	default:
		return Errorf(EINVALID, "unknown page status %q", p.Status)
	}
	return nil
}

// CatalogService records what each run did with each page.
type CatalogService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns retrieves runs, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// RecordPage stores the outcome of one page.
	// Returns ENOTFOUND if the run does not exist.
	RecordPage(ctx context.Context, rec *PageRecord) error

	// FindPages retrieves page records matching the filter in dump order.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageRecord, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	RunID  *string     `json:"runId"`
	Title  *string     `json:"title"`
	Status *PageStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
