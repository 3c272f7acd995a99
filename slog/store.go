package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/wikihtml"
)

// Ensure LoggingPageStore implements wikihtml.PageStore.
var _ wikihtml.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with logging.
type LoggingPageStore struct {
	next   wikihtml.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next wikihtml.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

func (s *LoggingPageStore) Save(ctx context.Context, page *wikihtml.RenderedPage) (err error) {
	defer func() {
		s.logger.Debug("save page",
			"title", page.Title,
			"file", page.FileName,
			"bytes", len(page.Content),
			"err", err,
		)
	}()
	return s.next.Save(ctx, page)
}

func (s *LoggingPageStore) Commit() (err error) {
	defer func() {
		s.logger.Info("commit output", "err", err)
	}()
	return s.next.Commit()
}

func (s *LoggingPageStore) Abort() (err error) {
	defer func() {
		s.logger.Info("abort output", "err", err)
	}()
	return s.next.Abort()
}
