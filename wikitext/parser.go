// Package wikitext parses MediaWiki markup into wikihtml nodes.
//
// The parser covers the block structure (headings, lists, preformatted
// lines, dividers, paragraphs) and the inline constructs the renderer cares
// about. Everything else is kept as text so that the renderer can reproduce
// it from the node offsets.
package wikitext

import (
	"strings"

	"github.com/fwojciec/wikihtml"
)

// Ensure Parser implements wikihtml.Parser at compile time.
var _ wikihtml.Parser = (*Parser)(nil)

// Parser parses wikitext. It is stateless and safe for concurrent use.
type Parser struct{}

// NewParser returns a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses text into a node tree. Node offsets are byte offsets into
// text. Malformed markup never fails the parse; it is kept as text and
// reported as a warning.
func (*Parser) Parse(text string) (*wikihtml.ParseResult, error) {
	p := &parser{src: text}
	nodes := p.parseBlocks()
	return &wikihtml.ParseResult{Nodes: nodes, Warnings: p.warnings}, nil
}

// rawTags hold their content verbatim; nothing inside them is markup.
var rawTags = map[string]bool{
	wikihtml.SyntaxHighlightTag: true,
	"source":                    true,
	"pre":                       true,
	"nowiki":                    true,
	"math":                      true,
}

type parser struct {
	src      string
	warnings []wikihtml.Warning
}

func (p *parser) warn(start, end int, message string) {
	p.warnings = append(p.warnings, wikihtml.Warning{
		Span:    wikihtml.Span{Start: start, End: end},
		Message: message,
	})
}

// lineEnd returns the index of the newline ending the line that contains
// pos, or len(src).
func (p *parser) lineEnd(pos int) int {
	if i := strings.IndexByte(p.src[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(p.src)
}

// next returns the start of the line after the one ending at end.
func (p *parser) next(end int) int {
	if end < len(p.src) {
		return end + 1
	}
	return end
}

func (p *parser) parseBlocks() []wikihtml.Node {
	var nodes []wikihtml.Node
	paraStart, paraEnd := -1, -1

	flush := func() {
		if paraStart >= 0 {
			nodes = append(nodes, p.parseInline(paraStart, paraEnd)...)
			paraStart, paraEnd = -1, -1
		}
	}

	pos := 0
	for pos < len(p.src) {
		end := p.lineEnd(pos)
		line := p.src[pos:end]

		switch {
		case isBlank(line):
			flush()
			start := pos
			for pos < len(p.src) && isBlank(p.src[pos:p.lineEnd(pos)]) {
				pos = p.next(p.lineEnd(pos))
			}
			nodes = append(nodes, &wikihtml.ParagraphBreak{Span: wikihtml.Span{Start: start, End: pos}})
			continue

		case line[0] == '=':
			if heading := p.parseHeading(pos, end); heading != nil {
				flush()
				nodes = append(nodes, heading)
				pos = p.next(end)
				continue
			}

		case strings.HasPrefix(line, "----"):
			flush()
			dashes := pos + len(line) - len(strings.TrimLeft(line, "-"))
			nodes = append(nodes, &wikihtml.HorizontalDivider{Span: wikihtml.Span{Start: pos, End: dashes}})
			nodes = append(nodes, p.parseInline(dashes, end)...)
			pos = p.next(end)
			continue

		case line[0] == '*' || line[0] == '#':
			flush()
			var list []wikihtml.Node
			list, pos = p.parseLists(pos)
			nodes = append(nodes, list...)
			continue

		case line[0] == ' ':
			flush()
			var pre wikihtml.Node
			pre, pos = p.parsePreformatted(pos)
			nodes = append(nodes, pre)
			continue
		}

		// Paragraph text. Markup that spans lines, such as a code block,
		// extends the paragraph to the line where it closes.
		end = p.logicalLineEnd(pos, end)
		if paraStart < 0 {
			paraStart = pos
		}
		paraEnd = end
		pos = p.next(end)
	}
	flush()

	return nodes
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// parseHeading returns nil if the line is not a heading.
func (p *parser) parseHeading(start, end int) wikihtml.Node {
	line := strings.TrimRight(p.src[start:end], " \t\r")
	open := len(line) - len(strings.TrimLeft(line, "="))
	closing := len(line) - len(strings.TrimRight(line, "="))
	level := min(open, closing, 6)
	if level == 0 || len(line) <= 2*level {
		return nil
	}

	innerStart := start + level
	innerEnd := start + len(line) - level
	for innerStart < innerEnd && isSpace(p.src[innerStart]) {
		innerStart++
	}
	for innerEnd > innerStart && isSpace(p.src[innerEnd-1]) {
		innerEnd--
	}

	return &wikihtml.Heading{
		Span:  wikihtml.Span{Start: start, End: start + len(line)},
		Level: level,
		Nodes: p.parseInline(innerStart, innerEnd),
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// parsePreformatted consumes consecutive lines starting with a space.
func (p *parser) parsePreformatted(start int) (wikihtml.Node, int) {
	pre := &wikihtml.Preformatted{Span: wikihtml.Span{Start: start}}
	pos := start
	for pos < len(p.src) && p.src[pos] == ' ' {
		end := p.lineEnd(pos)
		if isBlank(p.src[pos:end]) {
			break
		}
		if pos > start {
			pre.Nodes = append(pre.Nodes, &wikihtml.Text{Span: wikihtml.Span{Start: pos - 1, End: pos}})
		}
		pre.Nodes = append(pre.Nodes, p.parseInline(pos+1, end)...)
		pre.End = end
		pos = p.next(end)
	}
	return pre, pos
}

type listLine struct {
	start, end int
	marker     string
	content    int // start of the item text
}

// parseLists consumes consecutive list lines and returns the lists they form.
func (p *parser) parseLists(start int) ([]wikihtml.Node, int) {
	var lines []listLine
	pos := start
	for pos < len(p.src) && (p.src[pos] == '*' || p.src[pos] == '#') {
		end := p.lineEnd(pos)
		line := p.src[pos:end]
		marker := line[:len(line)-len(strings.TrimLeft(line, "*#"))]
		content := pos + len(marker)
		for content < end && isSpace(p.src[content]) {
			content++
		}
		lines = append(lines, listLine{start: pos, end: end, marker: marker, content: content})
		pos = p.next(end)
	}
	return p.buildLists(lines, 0), pos
}

// buildLists groups lines whose markers are longer than depth into lists.
// Lines with a deeper marker become a nested list of the preceding item.
func (p *parser) buildLists(lines []listLine, depth int) []wikihtml.Node {
	var nodes []wikihtml.Node
	for i := 0; i < len(lines); {
		kind := lines[i].marker[depth]
		var items []wikihtml.ListItem
		j := i
		for j < len(lines) && lines[j].marker[depth] == kind {
			line := lines[j]
			if len(line.marker) == depth+1 {
				items = append(items, wikihtml.ListItem{
					Span:  wikihtml.Span{Start: line.start, End: line.end},
					Nodes: p.parseInline(line.content, line.end),
				})
				j++
				continue
			}

			k := j
			for k < len(lines) && len(lines[k].marker) > depth+1 && lines[k].marker[depth] == kind {
				k++
			}
			if len(items) == 0 {
				items = append(items, wikihtml.ListItem{Span: wikihtml.Span{Start: line.start, End: line.start}})
			}
			last := &items[len(items)-1]
			last.Nodes = append(last.Nodes, p.buildLists(lines[j:k], depth+1)...)
			last.End = lines[k-1].end
			j = k
		}

		span := wikihtml.Span{Start: lines[i].start, End: lines[j-1].end}
		if kind == '#' {
			nodes = append(nodes, &wikihtml.OrderedList{Span: span, Items: items})
		} else {
			nodes = append(nodes, &wikihtml.UnorderedList{Span: span, Items: items})
		}
		i = j
	}
	return nodes
}

// logicalLineEnd extends a paragraph line that opens a comment, template or
// raw tag closing on a later line.
func (p *parser) logicalLineEnd(start, end int) int {
	for i := start; i < end; i++ {
		closeAt := -1
		switch {
		case strings.HasPrefix(p.src[i:], "<!--"):
			if j := strings.Index(p.src[i+4:], "-->"); j >= 0 {
				closeAt = i + 4 + j + 3
			}
		case strings.HasPrefix(p.src[i:], "{{"):
			closeAt = p.matchPair(i, len(p.src), "{{", "}}")
		case p.src[i] == '<':
			if tag, ok := p.scanOpenTag(i, len(p.src)); ok && !tag.selfClosing && rawTags[tag.name] {
				if _, after := p.findCloseTag(tag.name, tag.end, len(p.src)); after >= 0 {
					closeAt = after
				}
			}
		}
		if closeAt < 0 {
			continue
		}
		if closeAt > end {
			end = p.lineEnd(closeAt)
		}
		i = closeAt - 1
	}
	return end
}

// matchPair returns the index after the close delimiter matching the open
// delimiter at start, or -1.
func (p *parser) matchPair(start, limit int, open, closing string) int {
	depth := 0
	for i := start; i < limit; {
		switch {
		case strings.HasPrefix(p.src[i:limit], open):
			depth++
			i += len(open)
		case strings.HasPrefix(p.src[i:limit], closing):
			depth--
			i += len(closing)
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}
