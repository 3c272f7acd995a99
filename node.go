package wikihtml

// Span addresses a region of a page's raw text by byte offsets.
// Start is inclusive, End is exclusive.
type Span struct {
	Start int
	End   int
}

// Offsets returns the span itself so that every node embedding it exposes
// its offsets.
func (s Span) Offsets() Span { return s }

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Node is one syntactic element of a wikitext page. The set of
// implementations is closed to this package.
type Node interface {
	Offsets() Span
	node()
}

// Preformatted is a block of lines that start with a space.
type Preformatted struct {
	Span
	Nodes []Node
}

// Heading is a section heading. Level is the number of equals signs, 1 to 6.
type Heading struct {
	Span
	Level int
	Nodes []Node
}

// HorizontalDivider is a line of four or more dashes.
type HorizontalDivider struct{ Span }

// Bold is a ''' delimiter. It opens or closes a bold run.
type Bold struct{ Span }

// BoldItalic is a ''''' delimiter.
type BoldItalic struct{ Span }

// Italic is a '' delimiter.
type Italic struct{ Span }

// Tag is an HTML-like element such as <ref> or <syntaxhighlight>.
// Name is lowercase.
type Tag struct {
	Span
	Name  string
	Nodes []Node
}

// ListItem is one entry of an ordered or unordered list.
type ListItem struct {
	Span
	Nodes []Node
}

// OrderedList is a run of lines starting with #.
type OrderedList struct {
	Span
	Items []ListItem
}

// UnorderedList is a run of lines starting with *.
type UnorderedList struct {
	Span
	Items []ListItem
}

// Category is a [[Category:...]] link.
type Category struct {
	Span
	Target string
}

// Text is a run of plain text.
type Text struct{ Span }

// Link is an internal [[target|text]] link.
type Link struct {
	Span
	Target string
}

// ExternalLink is a [url text] link.
type ExternalLink struct{ Span }

// Template is an unexpanded {{name|...}} transclusion.
type Template struct {
	Span
	Name string
}

// Comment is an <!-- ... --> comment.
type Comment struct{ Span }

// ParagraphBreak is a run of blank lines.
type ParagraphBreak struct{ Span }

func (*Preformatted) node()      {}
func (*Heading) node()           {}
func (*HorizontalDivider) node() {}
func (*Bold) node()              {}
func (*BoldItalic) node()        {}
func (*Italic) node()            {}
func (*Tag) node()               {}
func (*OrderedList) node()       {}
func (*UnorderedList) node()     {}
func (*Category) node()          {}
func (*Text) node()              {}
func (*Link) node()              {}
func (*ExternalLink) node()      {}
func (*Template) node()          {}
func (*Comment) node()           {}
func (*ParagraphBreak) node()    {}

// Warning describes wikitext that the parser accepted but could not make
// sense of.
type Warning struct {
	Span
	Message string
}

// ParseResult is the output of parsing one page.
type ParseResult struct {
	Nodes    []Node
	Warnings []Warning
}

// Parser parses wikitext into a node tree.
type Parser interface {
	Parse(text string) (*ParseResult, error)
}
