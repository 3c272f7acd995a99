package fs

import (
	"strconv"
	"strings"

	"github.com/fwojciec/wikihtml"
	"golang.org/x/net/html"
)

// Extension returns the file extension for an output format.
func Extension(format string) string {
	if format == wikihtml.FormatMarkdown {
		return ".md"
	}
	return ".html"
}

func writeHead(b *strings.Builder, title string) {
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n</head>\n<body>\n")
}

func writeTail(b *strings.Builder) {
	b.WriteString("</body>\n</html>\n")
}

func siteTitle(site string) string {
	if site == "" {
		return "Wiki"
	}
	return site
}

// writeOutline lists the section titles of a page.
func writeOutline(b *strings.Builder, sections []wikihtml.Section) {
	if len(sections) < 2 {
		return
	}
	b.WriteString("<ul class=\"outline\">\n")
	for _, s := range sections {
		b.WriteString("<li class=\"level-")
		b.WriteString(strconv.Itoa(s.Level))
		b.WriteString("\">")
		b.WriteString(html.EscapeString(s.Title))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

// FormatHTMLPage formats a single page as a standalone HTML document.
// The site name is the <h1>, the page title the <h2>.
func FormatHTMLPage(site string, page *wikihtml.RenderedPage) string {
	var b strings.Builder
	writeHead(&b, page.Title+" - "+siteTitle(site))
	b.WriteString("<h1><a href=\"" + IndexName + ".html\">")
	b.WriteString(html.EscapeString(siteTitle(site)))
	b.WriteString("</a></h1>\n<h2>")
	b.WriteString(html.EscapeString(page.Title))
	b.WriteString("</h2>\n")
	writeOutline(&b, page.Sections)
	b.WriteString(page.Content)
	b.WriteString("\n")
	writeTail(&b)
	return b.String()
}

// FormatMarkdownPage formats a single page as Markdown with YAML frontmatter.
func FormatMarkdownPage(page *wikihtml.RenderedPage) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(strconv.Quote(page.Title))
	b.WriteString("\nnamespace: ")
	b.WriteString(strconv.Itoa(page.Namespace))
	b.WriteString("\n---\n\n")
	if len(page.Sections) >= 2 {
		for _, s := range page.Sections {
			b.WriteString(strings.Repeat("  ", max(0, s.Level-1-wikihtml.HeadingOffset)))
			b.WriteString("- [")
			b.WriteString(s.Title)
			b.WriteString("](#")
			b.WriteString(s.Anchor)
			b.WriteString(")\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(page.Content)
	return b.String()
}

// FormatIndex formats the index linking every page file.
func FormatIndex(site, format string, pages []*wikihtml.RenderedPage) string {
	ext := Extension(format)
	var b strings.Builder

	if format == wikihtml.FormatMarkdown {
		b.WriteString("# ")
		b.WriteString(siteTitle(site))
		b.WriteString("\n\n")
		for _, p := range pages {
			b.WriteString("- [")
			b.WriteString(p.Title)
			b.WriteString("](")
			b.WriteString(p.FileName + ext)
			b.WriteString(")\n")
		}
		return b.String()
	}

	writeHead(&b, siteTitle(site))
	b.WriteString("<h1>")
	b.WriteString(html.EscapeString(siteTitle(site)))
	b.WriteString("</h1>\n<ul>\n")
	for _, p := range pages {
		b.WriteString("<li><a href=\"")
		b.WriteString(html.EscapeString(p.FileName + ext))
		b.WriteString("\">")
		b.WriteString(html.EscapeString(p.Title))
		b.WriteString("</a></li>\n")
	}
	b.WriteString("</ul>\n")
	writeTail(&b)
	return b.String()
}

// FormatBundle formats every page into one document: a table of contents
// followed by each page under its own <h2>, separated by rules.
func FormatBundle(site, format string, pages []*wikihtml.RenderedPage) string {
	var b strings.Builder

	if format == wikihtml.FormatMarkdown {
		b.WriteString("# ")
		b.WriteString(siteTitle(site))
		b.WriteString("\n\n")
		for _, p := range pages {
			b.WriteString("- [")
			b.WriteString(p.Title)
			b.WriteString("](#")
			b.WriteString(wikihtml.Anchor(p.Title))
			b.WriteString(")\n")
		}
		for _, p := range pages {
			b.WriteString("\n---\n\n## ")
			b.WriteString(p.Title)
			b.WriteString("\n\n")
			b.WriteString(p.Content)
			b.WriteString("\n")
		}
		return b.String()
	}

	writeHead(&b, siteTitle(site))
	b.WriteString("<h1>")
	b.WriteString(html.EscapeString(siteTitle(site)))
	b.WriteString("</h1>\n<ul class=\"contents\">\n")
	for _, p := range pages {
		b.WriteString("<li><a href=\"#")
		b.WriteString(p.FileName)
		b.WriteString("\">")
		b.WriteString(html.EscapeString(p.Title))
		b.WriteString("</a></li>\n")
	}
	b.WriteString("</ul>\n")
	for _, p := range pages {
		b.WriteString("<hr/>\n<h2 id=\"")
		b.WriteString(p.FileName)
		b.WriteString("\">")
		b.WriteString(html.EscapeString(p.Title))
		b.WriteString("</h2>\n")
		b.WriteString(p.Content)
		b.WriteString("\n")
	}
	writeTail(&b)
	return b.String()
}
