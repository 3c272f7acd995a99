package mock

import "github.com/fwojciec/wikihtml"

var _ wikihtml.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikihtml.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
