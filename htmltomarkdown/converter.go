// Package htmltomarkdown converts rendered wiki pages to Markdown using
// github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikihtml"
)

// Ensure Converter implements wikihtml.Converter at compile time.
var _ wikihtml.Converter = (*Converter)(nil)

// Converter turns page fragments into CommonMark.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a rendered page fragment into Markdown.
// Headings deeper than <h6> are emitted as bold paragraphs.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wikihtml.Errorf(wikihtml.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", wikihtml.Errorf(wikihtml.EINVALID, "parse HTML: %v", err)
	}
	flattenDeepHeadings(doc)

	result, err := c.conv.ConvertNode(doc.Get(0))
	if err != nil {
		return "", err
	}

	return string(result), nil
}

// flattenDeepHeadings replaces heading elements beyond HTML's six levels
// with bold paragraphs. Elements inside code blocks are left as they are.
// Matches are visited innermost first so nested headings are flattened too.
func flattenDeepHeadings(doc *goquery.Document) {
	headings := doc.Find("h7, h8")
	for i := headings.Length() - 1; i >= 0; i-- {
		s := headings.Eq(i)
		if s.Closest("pre, code").Length() > 0 {
			continue
		}
		inner, err := s.Html()
		if err != nil {
			continue
		}
		s.ReplaceWithHtml("<p><strong>" + inner + "</strong></p>")
	}
}
