// Package goquery extracts structure from rendered HTML using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikihtml"
)

// Ensure SectionExtractor implements wikihtml.SectionExtractor at compile time.
var _ wikihtml.SectionExtractor = (*SectionExtractor)(nil)

// sectionSelector matches every heading the renderer can emit. Levels above
// six come from deep wikitext headings.
var sectionSelector = func() string {
	tags := make([]string, 0, 6)
	for level := 1 + wikihtml.HeadingOffset; level <= 6+wikihtml.HeadingOffset; level++ {
		tags = append(tags, "h"+strconv.Itoa(level))
	}
	return strings.Join(tags, ", ")
}()

// SectionExtractor lists the headings of rendered page fragments.
type SectionExtractor struct{}

// NewSectionExtractor returns a new SectionExtractor.
func NewSectionExtractor() *SectionExtractor {
	return &SectionExtractor{}
}

// ExtractSections returns the headings of html in document order with
// unique anchors. Headings without text are skipped.
func (e *SectionExtractor) ExtractSections(html string) ([]wikihtml.Section, error) {
	if strings.TrimSpace(html) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wikihtml.Errorf(wikihtml.EINVALID, "failed to parse HTML: %v", err)
	}

	var sections []wikihtml.Section
	var anchors wikihtml.Anchors
	doc.Find(sectionSelector).Each(func(_ int, sel *goquery.Selection) {
		title := strings.Join(strings.Fields(sel.Text()), " ")
		if title == "" {
			return
		}
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(sel), "h"))
		if err != nil {
			return
		}
		sections = append(sections, wikihtml.Section{
			Level:  level,
			Title:  title,
			Anchor: anchors.Next(title),
		})
	})

	return sections, nil
}
