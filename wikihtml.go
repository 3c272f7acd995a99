// Package wikihtml converts MediaWiki XML dumps into HTML documents.
// It decodes dump files into page records, drops pages that live in
// meta or file namespaces, parses the remaining wikitext into a node tree
// and renders that tree as HTML.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, goquery/).
package wikihtml
