package wikihtml

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// RenderState tracks which inline style runs are open while a page is
// rendered. Each delimiter flips its own flag; the flags are independent and
// do not nest. One RenderState is shared by the whole walk of one page.
type RenderState struct {
	BoldOpen       bool
	BoldItalicOpen bool
	ItalicOpen     bool
}

// HeadingOffset is added to wikitext heading levels so that the outermost
// page heading renders as <h3>. <h1> and <h2> belong to the document.
const HeadingOffset = 2

// SyntaxHighlightTag is the tag whose children are copied verbatim into <pre> blocks.
const SyntaxHighlightTag = "syntaxhighlight"

// RenderHTML renders nodes parsed from source as an HTML fragment, starting
// with all inline runs closed.
func RenderHTML(source string, nodes []Node) (string, error) {
	var b strings.Builder
	var state RenderState
	if err := RenderNodes(&b, source, nodes, &state); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderNodes writes the HTML for nodes to b. Node offsets address source,
// the original page text. The state is updated in place and carries over
// to subsequent calls for the same page.
//
// Returns EINVALID if a node span does not address a valid region of source.
func RenderNodes(b *strings.Builder, source string, nodes []Node, state *RenderState) error {
	for _, node := range nodes {
		if err := renderNode(b, source, node, state); err != nil {
			return err
		}
	}
	return nil
}

func renderNode(b *strings.Builder, source string, node Node, state *RenderState) error {
	switch n := node.(type) {
	case *Preformatted:
		b.WriteString("<pre>")
		if err := RenderNodes(b, source, n.Nodes, state); err != nil {
			return err
		}
		b.WriteString("</pre>")

	case *Heading:
		level := strconv.Itoa(n.Level + HeadingOffset)
		b.WriteString("<h" + level + ">")
		if err := RenderNodes(b, source, n.Nodes, state); err != nil {
			return err
		}
		b.WriteString("</h" + level + ">")

	case *HorizontalDivider:
		b.WriteString("<hr/>")

	case *Bold:
		state.BoldOpen = !state.BoldOpen
		writeToggle(b, state.BoldOpen, "<b>", "</b>")

	case *BoldItalic:
		state.BoldItalicOpen = !state.BoldItalicOpen
		writeToggle(b, state.BoldItalicOpen, "<b><i>", "</i></b>")

	case *Italic:
		state.ItalicOpen = !state.ItalicOpen
		writeToggle(b, state.ItalicOpen, "<i>", "</i>")

	case *Tag:
		if n.Name != SyntaxHighlightTag {
			return writeSpan(b, source, n.Span)
		}
		for _, child := range n.Nodes {
			code, err := SliceSpan(source, child.Offsets())
			if err != nil {
				return err
			}
			b.WriteString("<pre>")
			b.WriteString(code)
			b.WriteString("</pre>")
		}

	case *OrderedList:
		return renderList(b, source, "ol", n.Items, state)

	case *UnorderedList:
		return renderList(b, source, "ul", n.Items, state)

	case *Category:
		// Categories are page metadata.

	default:
		return writeSpan(b, source, node.Offsets())
	}
	return nil
}

func renderList(b *strings.Builder, source, tag string, items []ListItem, state *RenderState) error {
	b.WriteString("<" + tag + ">")
	for _, item := range items {
		b.WriteString("<li>")
		if err := RenderNodes(b, source, item.Nodes, state); err != nil {
			return err
		}
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
	return nil
}

func writeToggle(b *strings.Builder, open bool, openTag, closeTag string) {
	if open {
		b.WriteString(openTag)
	} else {
		b.WriteString(closeTag)
	}
}

func writeSpan(b *strings.Builder, source string, span Span) error {
	text, err := SliceSpan(source, span)
	if err != nil {
		return err
	}
	b.WriteString(text)
	return nil
}

// SliceSpan returns the bytes of source addressed by span.
// Returns EINVALID if the span is reversed, out of range, or splits a
// UTF-8 encoded character.
func SliceSpan(source string, span Span) (string, error) {
	if span.Start < 0 || span.End > len(source) || span.Start > span.End {
		return "", Errorf(EINVALID, "node span [%d:%d] outside page text of %d bytes", span.Start, span.End, len(source))
	}
	if !onRuneBoundary(source, span.Start) || !onRuneBoundary(source, span.End) {
		return "", Errorf(EINVALID, "node span [%d:%d] splits a character", span.Start, span.End)
	}
	return source[span.Start:span.End], nil
}

func onRuneBoundary(s string, i int) bool {
	return i == len(s) || utf8.RuneStart(s[i])
}
