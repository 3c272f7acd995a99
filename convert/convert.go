// Package convert provides dump conversion orchestration.
// It coordinates classification, parsing, rendering and storage of the pages
// of a decoded dump.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/wikihtml"
	"github.com/fwojciec/wikihtml/fs"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages rendered at once when
// Concurrency is not set.
const DefaultConcurrency = 4

// Converter orchestrates the conversion of a dump.
type Converter struct {
	Parser     wikihtml.Parser
	Classifier wikihtml.Classifier
	Sections   wikihtml.SectionExtractor // optional
	Markdown   wikihtml.Converter        // required for markdown output
	Catalog    wikihtml.CatalogService   // optional
	Logger     *slog.Logger              // optional

	Format      string
	Concurrency int
}

// Result holds the outcome of a conversion.
type Result struct {
	Rendered int
	Excluded int
	Skipped  int
	Failed   int
	Bytes    int
	Sections int
}

// ProgressEvent reports progress during a conversion.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting conversion progress.
type ProgressFunc func(event ProgressEvent)

// candidate is a page selected for rendering.
type candidate struct {
	index    int // position in the dump
	position int // position among rendered pages
	page     *wikihtml.Page
	class    wikihtml.NamespaceClass
	name     string
}

// renderResult holds the outcome of rendering a single page.
type renderResult struct {
	position int
	page     *wikihtml.RenderedPage
	hash     string
	err      error
}

// Convert renders every content page of dump and saves it to store. Pages
// outside the content namespaces or not written in wikitext are left out.
// A page that fails to render is counted and reported through progress; it
// does not stop the other pages. The caller commits or aborts the store.
//
// If a catalog is configured and runID is not empty, the outcome of every
// page is recorded under runID.
//
// Returns ECONFLICT if two content pages map to the same file name. Nothing
// is saved in that case.
func (c *Converter) Convert(ctx context.Context, dump *wikihtml.Dump, store wikihtml.PageStore, runID string, progress ProgressFunc) (*Result, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	record := func(rec *wikihtml.PageRecord) error {
		if c.Catalog == nil || runID == "" {
			return nil
		}
		rec.RunID = runID
		if err := c.Catalog.RecordPage(ctx, rec); err != nil {
			return fmt.Errorf("record page %q: %w", rec.Title, err)
		}
		return nil
	}

	var result Result

	// Select the pages to render
	var candidates []*candidate
	var titles []string
	var unrendered []*wikihtml.PageRecord
	for i, page := range dump.Pages {
		class := c.Classifier.Classify(page.Namespace)
		rec := &wikihtml.PageRecord{
			Title:     page.Title,
			Namespace: page.Namespace,
			Class:     class,
			Position:  i,
		}

		switch {
		case !page.IsWikitext():
			logger.Debug("skipping page", "title", page.Title, "model", page.Model, "format", page.Format)
			result.Skipped++
			rec.Status = wikihtml.StatusSkipped
		case !wikihtml.Include(class):
			logger.Debug("excluding page", "title", page.Title, "namespace", page.Namespace, "class", class)
			result.Excluded++
			rec.Status = wikihtml.StatusExcluded
		default:
			candidates = append(candidates, &candidate{
				index:    i,
				position: len(candidates),
				page:     page,
				class:    class,
			})
			titles = append(titles, page.Title)
			continue
		}
		unrendered = append(unrendered, rec)
	}

	names, err := fs.AssignFileNames(titles)
	if err != nil {
		return nil, err
	}

	// Record pages only once the run is known to proceed
	for _, rec := range unrendered {
		if err := record(rec); err != nil {
			return nil, err
		}
	}
	for i, cand := range candidates {
		cand.name = names[i]
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Channel for collecting results
	resultCh := make(chan renderResult, len(candidates))

	// Progress tracking
	var completed atomic.Int64
	total := len(candidates)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	// Start workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, cand := range candidates {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- c.renderPage(gctx, cand)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]*renderResult, len(candidates))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = &r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Title:     candidates[r.position].page.Title,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Save pages in dump order
	for i, cand := range candidates {
		r := results[i]
		rec := &wikihtml.PageRecord{
			Title:     cand.page.Title,
			Namespace: cand.page.Namespace,
			Class:     cand.class,
			FileName:  cand.name,
			Position:  cand.index,
		}

		if r.err != nil {
			logger.Debug("page failed", "title", cand.page.Title, "error", r.err)
			result.Failed++
			rec.Status = wikihtml.StatusFailed
			rec.Error = r.err.Error()
			if err := record(rec); err != nil {
				return nil, err
			}
			continue
		}

		if err := store.Save(ctx, r.page); err != nil {
			return nil, fmt.Errorf("save page %q: %w", cand.page.Title, err)
		}

		result.Rendered++
		result.Bytes += len(r.page.Content)
		result.Sections += len(r.page.Sections)

		rec.Status = wikihtml.StatusRendered
		rec.ContentHash = r.hash
		rec.Bytes = len(r.page.Content)
		rec.Sections = len(r.page.Sections)
		if err := record(rec); err != nil {
			return nil, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result, nil
}

// renderPage parses and renders a single page. Each page gets its own
// render state.
func (c *Converter) renderPage(ctx context.Context, cand *candidate) renderResult {
	result := renderResult{position: cand.position}

	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	parsed, err := c.Parser.Parse(cand.page.Text)
	if err != nil {
		result.err = err
		return result
	}

	html, err := wikihtml.RenderHTML(cand.page.Text, parsed.Nodes)
	if err != nil {
		result.err = err
		return result
	}

	var sections []wikihtml.Section
	if c.Sections != nil {
		if sections, err = c.Sections.ExtractSections(html); err != nil {
			result.err = err
			return result
		}
	}

	content := html
	if c.Format == wikihtml.FormatMarkdown && strings.TrimSpace(html) != "" {
		if content, err = c.Markdown.Convert(html); err != nil {
			result.err = err
			return result
		}
	}

	result.page = &wikihtml.RenderedPage{
		Title:     cand.page.Title,
		Namespace: cand.page.Namespace,
		FileName:  cand.name,
		Position:  cand.position,
		HTML:      html,
		Content:   content,
		Sections:  sections,
	}
	result.hash = ComputeHash(content)
	return result
}
