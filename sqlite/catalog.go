package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/wikihtml"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wikihtml.CatalogService = (*CatalogService)(nil)

// CatalogService implements wikihtml.CatalogService using SQLite.
type CatalogService struct {
	db *DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db}
}

// CreateRun creates a new run with a generated ID and timestamp.
func (s *CatalogService) CreateRun(ctx context.Context, run *wikihtml.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, inputs, output_dir, format, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Inputs, run.OutputDir, run.Format, run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *CatalogService) FindRuns(ctx context.Context, filter wikihtml.RunFilter) ([]*wikihtml.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, inputs, output_dir, format, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*wikihtml.Run
	for rows.Next() {
		var run wikihtml.Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.Inputs, &run.OutputDir, &run.Format, &createdAt); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// RecordPage stores the outcome of one page with a generated ID.
// Returns ENOTFOUND if the run does not exist.
func (s *CatalogService) RecordPage(ctx context.Context, rec *wikihtml.PageRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM runs WHERE id = ?", rec.RunID).Scan(&exists)
	if err == sql.ErrNoRows {
		return wikihtml.Errorf(wikihtml.ENOTFOUND, "run not found")
	}
	if err != nil {
		return err
	}

	rec.ID = uuid.New().String()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, title, namespace, class, status, file_name, content_hash, bytes, sections, position, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.RunID, rec.Title, rec.Namespace, rec.Class.String(), string(rec.Status),
		rec.FileName, rec.ContentHash, rec.Bytes, rec.Sections, rec.Position, rec.Error)

	return err
}

// FindPages retrieves page records matching the filter in dump order.
func (s *CatalogService) FindPages(ctx context.Context, filter wikihtml.PageFilter) ([]*wikihtml.PageRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, run_id, title, namespace, class, status, file_name, content_hash, bytes, sections, position, error
		FROM pages WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY run_id, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*wikihtml.PageRecord
	for rows.Next() {
		var rec wikihtml.PageRecord
		var class, status string

		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Title, &rec.Namespace, &class, &status,
			&rec.FileName, &rec.ContentHash, &rec.Bytes, &rec.Sections, &rec.Position, &rec.Error); err != nil {
			return nil, err
		}
		if rec.Class, err = wikihtml.ParseNamespaceClass(class); err != nil {
			return nil, err
		}
		rec.Status = wikihtml.PageStatus(status)

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}
