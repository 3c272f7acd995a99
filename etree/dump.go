// Package etree decodes MediaWiki XML dumps using github.com/beevik/etree.
package etree

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/wikihtml"
)

// Ensure DumpDecoder implements wikihtml.DumpDecoder at compile time.
var _ wikihtml.DumpDecoder = (*DumpDecoder)(nil)

// DumpDecoder reads a whole dump into memory and extracts its pages.
type DumpDecoder struct{}

// NewDumpDecoder returns a new DumpDecoder.
func NewDumpDecoder() *DumpDecoder {
	return &DumpDecoder{}
}

// Decode reads a MediaWiki export document from r. Pages are returned in
// document order. The text, format and model of a page come from its last
// revision.
func (d *DumpDecoder) Decode(ctx context.Context, r io.Reader) (*wikihtml.Dump, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, wikihtml.Errorf(wikihtml.EINVALID, "failed to parse dump XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, wikihtml.Errorf(wikihtml.EINVALID, "empty dump XML")
	}
	if root.Tag != "mediawiki" {
		return nil, wikihtml.Errorf(wikihtml.EINVALID, "unexpected root element <%s>, want <mediawiki>", root.Tag)
	}

	dump := &wikihtml.Dump{}
	if name := root.FindElement("siteinfo/sitename"); name != nil {
		dump.SiteName = strings.TrimSpace(name.Text())
	}

	for _, el := range root.SelectElements("page") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := decodePage(el)
		if err != nil {
			return nil, err
		}
		dump.Pages = append(dump.Pages, page)
	}

	return dump, nil
}

// decodePage extracts one <page> element.
func decodePage(el *etree.Element) (*wikihtml.Page, error) {
	page := &wikihtml.Page{Title: childText(el, "title")}

	if ns := childText(el, "ns"); ns != "" {
		n, err := strconv.Atoi(ns)
		if err != nil {
			return nil, wikihtml.Errorf(wikihtml.EINVALID, "page %q has invalid namespace %q", page.Title, ns)
		}
		page.Namespace = n
	}

	if redirect := el.SelectElement("redirect"); redirect != nil {
		page.Redirect = redirect.SelectAttrValue("title", "")
	}

	revisions := el.SelectElements("revision")
	if len(revisions) > 0 {
		rev := revisions[len(revisions)-1]
		if text := rev.SelectElement("text"); text != nil {
			page.Text = text.Text()
		}
		page.Format = childText(rev, "format")
		page.Model = childText(rev, "model")
	}

	return page, nil
}

// childText returns the trimmed text of the named child element, or "".
func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
