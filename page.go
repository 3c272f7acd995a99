package wikihtml

import (
	"context"
	"io"
)

// Page is a single page record read from a dump.
type Page struct {
	Title     string
	Namespace int
	Text      string // raw wikitext

	// Content descriptors of the latest revision. Empty when the dump
	// does not carry them.
	Format string
	Model  string

	// Redirect holds the target title of a redirect page.
	Redirect string
}

// Class returns the namespace class of the page.
func (p *Page) Class() NamespaceClass {
	return Classify(p.Namespace)
}

// Content models and formats that the wikitext parser understands.
const (
	ModelWikitext  = "wikitext"
	FormatWikitext = "text/x-wiki"
)

// IsWikitext reports whether the page content can be parsed as wikitext.
// Pages without content descriptors are assumed to be wikitext.
func (p *Page) IsWikitext() bool {
	if p.Model != "" && p.Model != ModelWikitext {
		return false
	}
	if p.Format != "" && p.Format != FormatWikitext {
		return false
	}
	return true
}

// Dump is the decoded content of one dump file.
type Dump struct {
	SiteName string
	Pages    []*Page
}

// DumpDecoder decodes MediaWiki XML dumps.
type DumpDecoder interface {
	// Decode reads a complete dump from r.
	// Returns EINVALID if the input is not a MediaWiki dump.
	Decode(ctx context.Context, r io.Reader) (*Dump, error)
}

// RenderedPage is a page ready to be written to the output directory.
type RenderedPage struct {
	Title     string
	Namespace int
	FileName  string // sanitized, without extension
	Position  int    // index among the rendered pages, in dump order
	HTML      string // rendered fragment
	Content   string // body written to disk: HTML or Markdown
	Sections  []Section
}

// Validate returns an error if the page cannot be written.
func (p *RenderedPage) Validate() error {
	if p.Title == "" {
		return Errorf(EINVALID, "rendered page title required")
	}
	if p.FileName == "" {
		return Errorf(EINVALID, "rendered page file name required")
	}
	return nil
}

// PageStore persists rendered pages with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *RenderedPage) error
	Commit() error
	Abort() error
}
