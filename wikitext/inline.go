package wikitext

import (
	"strings"

	"github.com/fwojciec/wikihtml"
)

// externalSchemes start an external link when they follow a single '['.
var externalSchemes = []string{"http://", "https://", "ftp://", "//", "mailto:"}

// voidTags never have a closing tag.
var voidTags = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
	"wbr": true,
}

// parseInline parses src[start:end] into inline nodes.
func (p *parser) parseInline(start, end int) []wikihtml.Node {
	var nodes []wikihtml.Node
	textStart := start

	emit := func(at int, node wikihtml.Node) {
		if at > textStart {
			nodes = append(nodes, &wikihtml.Text{Span: wikihtml.Span{Start: textStart, End: at}})
		}
		nodes = append(nodes, node)
		textStart = node.Offsets().End
	}

	for i := start; i < end; {
		rest := p.src[i:end]
		switch {
		case strings.HasPrefix(rest, "'''''"):
			emit(i, &wikihtml.BoldItalic{Span: wikihtml.Span{Start: i, End: i + 5}})
			i += 5

		case strings.HasPrefix(rest, "'''"):
			emit(i, &wikihtml.Bold{Span: wikihtml.Span{Start: i, End: i + 3}})
			i += 3

		case strings.HasPrefix(rest, "''"):
			emit(i, &wikihtml.Italic{Span: wikihtml.Span{Start: i, End: i + 2}})
			i += 2

		case strings.HasPrefix(rest, "<!--"):
			closeAt := end
			if j := strings.Index(p.src[i+4:end], "-->"); j >= 0 {
				closeAt = i + 4 + j + 3
			} else {
				p.warn(i, end, "unterminated comment")
			}
			emit(i, &wikihtml.Comment{Span: wikihtml.Span{Start: i, End: closeAt}})
			i = closeAt

		case strings.HasPrefix(rest, "[["):
			node := p.parseLink(i, end)
			if node == nil {
				p.warn(i, i+2, "unterminated link")
				i += 2
				continue
			}
			emit(i, node)
			i = node.Offsets().End

		case strings.HasPrefix(rest, "{{"):
			closeAt := p.matchPair(i, end, "{{", "}}")
			if closeAt < 0 {
				p.warn(i, i+2, "unterminated template")
				i += 2
				continue
			}
			emit(i, &wikihtml.Template{
				Span: wikihtml.Span{Start: i, End: closeAt},
				Name: targetOf(p.src[i+2 : closeAt-2]),
			})
			i = closeAt

		case rest[0] == '[' && hasExternalScheme(rest[1:]):
			j := strings.IndexAny(rest, "]\n")
			if j < 0 || rest[j] != ']' {
				i++
				continue
			}
			emit(i, &wikihtml.ExternalLink{Span: wikihtml.Span{Start: i, End: i + j + 1}})
			i += j + 1

		case rest[0] == '<':
			node := p.parseTag(i, end)
			if node == nil {
				i++
				continue
			}
			emit(i, node)
			i = node.Offsets().End

		default:
			i++
		}
	}

	if end > textStart {
		nodes = append(nodes, &wikihtml.Text{Span: wikihtml.Span{Start: textStart, End: end}})
	}
	return nodes
}

func hasExternalScheme(s string) bool {
	for _, scheme := range externalSchemes {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// parseLink parses an internal link starting at start. Links whose target is
// in the Category namespace become Category nodes. Returns nil if the link is
// not closed before end.
func (p *parser) parseLink(start, end int) wikihtml.Node {
	closeAt := p.matchPair(start, end, "[[", "]]")
	if closeAt < 0 {
		return nil
	}
	span := wikihtml.Span{Start: start, End: closeAt}
	target := targetOf(p.src[start+2 : closeAt-2])
	if isCategory(target) {
		return &wikihtml.Category{Span: span, Target: target}
	}
	return &wikihtml.Link{Span: span, Target: target}
}

// targetOf returns the part of a link or template body before the first '|'.
func targetOf(body string) string {
	if i := strings.IndexByte(body, '|'); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}

func isCategory(target string) bool {
	const prefix = "category:"
	return len(target) > len(prefix) && strings.EqualFold(target[:len(prefix)], prefix)
}

// openTag describes a parsed <name ...> or <name .../> tag.
type openTag struct {
	name        string // lowercase
	end         int    // index after '>'
	selfClosing bool
}

// scanOpenTag parses an opening tag at start.
func (p *parser) scanOpenTag(start, end int) (openTag, bool) {
	i := start + 1
	for i < end && isTagNameByte(p.src[i]) {
		i++
	}
	if i == start+1 || !isLetter(p.src[start+1]) {
		return openTag{}, false
	}
	name := strings.ToLower(p.src[start+1 : i])

	gt := strings.IndexAny(p.src[i:end], "<>")
	if gt < 0 || p.src[i+gt] != '>' {
		return openTag{}, false
	}
	closeAt := i + gt + 1
	selfClosing := p.src[i+gt-1] == '/'
	return openTag{name: name, end: closeAt, selfClosing: selfClosing}, true
}

// findCloseTag finds </name> in src[from:end] ignoring case. It returns the
// index of '<' and the index after '>', or -1, -1.
func (p *parser) findCloseTag(name string, from, end int) (int, int) {
	needle := "</" + name
	for i := from; i+len(needle) <= end; i++ {
		if p.src[i] != '<' || !strings.EqualFold(p.src[i:i+len(needle)], needle) {
			continue
		}
		j := i + len(needle)
		for j < end && isSpace(p.src[j]) {
			j++
		}
		if j < end && p.src[j] == '>' {
			return i, j + 1
		}
	}
	return -1, -1
}

// parseTag parses an element starting at start. Returns nil if start does not
// begin a tag.
func (p *parser) parseTag(start, end int) wikihtml.Node {
	tag, ok := p.scanOpenTag(start, end)
	if !ok {
		return nil
	}
	if tag.selfClosing || voidTags[tag.name] {
		return &wikihtml.Tag{Span: wikihtml.Span{Start: start, End: tag.end}, Name: tag.name}
	}

	closeStart, closeEnd := p.findCloseTag(tag.name, tag.end, end)
	if closeStart < 0 {
		p.warn(start, tag.end, "unclosed <"+tag.name+"> tag")
		return &wikihtml.Tag{Span: wikihtml.Span{Start: start, End: tag.end}, Name: tag.name}
	}

	node := &wikihtml.Tag{Span: wikihtml.Span{Start: start, End: closeEnd}, Name: tag.name}
	switch {
	case closeStart == tag.end:
	case rawTags[tag.name]:
		node.Nodes = []wikihtml.Node{&wikihtml.Text{Span: wikihtml.Span{Start: tag.end, End: closeStart}}}
	default:
		node.Nodes = p.parseInline(tag.end, closeStart)
	}
	return node
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameByte(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9')
}
