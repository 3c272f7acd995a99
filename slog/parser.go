package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wikihtml"
)

// Ensure LoggingParser implements wikihtml.Parser.
var _ wikihtml.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging of parse warnings.
type LoggingParser struct {
	next   wikihtml.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next wikihtml.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(text string) (result *wikihtml.ParseResult, err error) {
	defer func(begin time.Time) {
		var warnings []wikihtml.Warning
		if result != nil {
			warnings = result.Warnings
		}
		p.logger.Debug("parse",
			"bytes", len(text),
			"warnings", len(warnings),
			"duration", time.Since(begin),
			"err", err,
		)
		for _, w := range warnings {
			p.logger.Debug("parse warning",
				"start", w.Start,
				"end", w.End,
				"message", w.Message,
			)
		}
	}(time.Now())
	return p.next.Parse(text)
}
