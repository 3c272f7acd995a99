package wikihtml

import (
	"strconv"
	"strings"
	"unicode"
)

// Section is a heading found in a rendered page.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// SectionExtractor lists the headings of a rendered HTML fragment.
type SectionExtractor interface {
	ExtractSections(html string) ([]Section, error)
}

// Anchors generates URL-safe anchors, adding numeric suffixes to duplicates.
// The zero value is ready to use.
type Anchors struct {
	counts map[string]int
}

// Next returns a unique anchor for title.
func (a *Anchors) Next(title string) string {
	if a.counts == nil {
		a.counts = make(map[string]int)
	}
	base := Anchor(title)
	count, exists := a.counts[base]
	a.counts[base] = count + 1
	if !exists {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// Anchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func Anchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
