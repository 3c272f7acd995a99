// Package slog provides logging decorators for wikihtml services.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wikihtml"
)

// Ensure LoggingDumpDecoder implements wikihtml.DumpDecoder.
var _ wikihtml.DumpDecoder = (*LoggingDumpDecoder)(nil)

// LoggingDumpDecoder wraps a DumpDecoder with logging.
type LoggingDumpDecoder struct {
	next   wikihtml.DumpDecoder
	logger *slog.Logger
}

// NewLoggingDumpDecoder creates a new LoggingDumpDecoder.
func NewLoggingDumpDecoder(next wikihtml.DumpDecoder, logger *slog.Logger) *LoggingDumpDecoder {
	return &LoggingDumpDecoder{next: next, logger: logger}
}

// Decode delegates to the wrapped decoder and logs the operation.
func (d *LoggingDumpDecoder) Decode(ctx context.Context, r io.Reader) (dump *wikihtml.Dump, err error) {
	defer func(begin time.Time) {
		var site string
		var pages int
		if dump != nil {
			site, pages = dump.SiteName, len(dump.Pages)
		}
		d.logger.Info("dump decode",
			"site", site,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Decode(ctx, r)
}
