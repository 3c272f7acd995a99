package mock

import (
	"context"

	"github.com/fwojciec/wikihtml"
)

var _ wikihtml.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of wikihtml.CatalogService.
type CatalogService struct {
	CreateRunFn  func(ctx context.Context, run *wikihtml.Run) error
	FindRunsFn   func(ctx context.Context, filter wikihtml.RunFilter) ([]*wikihtml.Run, error)
	RecordPageFn func(ctx context.Context, rec *wikihtml.PageRecord) error
	FindPagesFn  func(ctx context.Context, filter wikihtml.PageFilter) ([]*wikihtml.PageRecord, error)
}

func (s *CatalogService) CreateRun(ctx context.Context, run *wikihtml.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *CatalogService) FindRuns(ctx context.Context, filter wikihtml.RunFilter) ([]*wikihtml.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *CatalogService) RecordPage(ctx context.Context, rec *wikihtml.PageRecord) error {
	return s.RecordPageFn(ctx, rec)
}

func (s *CatalogService) FindPages(ctx context.Context, filter wikihtml.PageFilter) ([]*wikihtml.PageRecord, error) {
	return s.FindPagesFn(ctx, filter)
}
