package mock

import (
	"context"
	"io"

	"github.com/fwojciec/wikihtml"
)

// Compile-time interface verification.
var (
	_ wikihtml.DumpDecoder      = (*DumpDecoder)(nil)
	_ wikihtml.Parser           = (*Parser)(nil)
	_ wikihtml.Classifier       = (*Classifier)(nil)
	_ wikihtml.SectionExtractor = (*SectionExtractor)(nil)
	_ wikihtml.PageStore        = (*PageStore)(nil)
)

// DumpDecoder is a mock implementation of wikihtml.DumpDecoder.
type DumpDecoder struct {
	DecodeFn func(ctx context.Context, r io.Reader) (*wikihtml.Dump, error)
}

func (d *DumpDecoder) Decode(ctx context.Context, r io.Reader) (*wikihtml.Dump, error) {
	return d.DecodeFn(ctx, r)
}

// Parser is a mock implementation of wikihtml.Parser.
type Parser struct {
	ParseFn func(text string) (*wikihtml.ParseResult, error)
}

func (p *Parser) Parse(text string) (*wikihtml.ParseResult, error) {
	return p.ParseFn(text)
}

// Classifier is a mock implementation of wikihtml.Classifier.
type Classifier struct {
	ClassifyFn func(namespace int) wikihtml.NamespaceClass
}

func (c *Classifier) Classify(namespace int) wikihtml.NamespaceClass {
	return c.ClassifyFn(namespace)
}

// SectionExtractor is a mock implementation of wikihtml.SectionExtractor.
type SectionExtractor struct {
	ExtractSectionsFn func(html string) ([]wikihtml.Section, error)
}

func (e *SectionExtractor) ExtractSections(html string) ([]wikihtml.Section, error) {
	return e.ExtractSectionsFn(html)
}

// PageStore is a mock implementation of wikihtml.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *wikihtml.RenderedPage) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *wikihtml.RenderedPage) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
