package wikihtml_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/wikihtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spanOf returns the span of the first occurrence of sub in src.
func spanOf(t *testing.T, src, sub string) wikihtml.Span {
	t.Helper()
	i := strings.Index(src, sub)
	require.GreaterOrEqual(t, i, 0, "%q not found in source", sub)
	return wikihtml.Span{Start: i, End: i + len(sub)}
}

func TestRenderHTML_BlockStructure(t *testing.T) {
	t.Parallel()

	t.Run("heading level is shifted by two", func(t *testing.T) {
		t.Parallel()

		src := "= Intro ="
		nodes := []wikihtml.Node{
			&wikihtml.Heading{
				Span:  wikihtml.Span{Start: 0, End: len(src)},
				Level: 1,
				Nodes: []wikihtml.Node{&wikihtml.Text{Span: spanOf(t, src, "Intro")}},
			},
		}

		got, err := wikihtml.RenderHTML(src, nodes)

		require.NoError(t, err)
		assert.Equal(t, "<h3>Intro</h3>", got)
	})

	t.Run("deep headings are not clamped", func(t *testing.T) {
		t.Parallel()

		src := "====== Deep ======"
		nodes := []wikihtml.Node{
			&wikihtml.Heading{
				Level: 6,
				Nodes: []wikihtml.Node{&wikihtml.Text{Span: spanOf(t, src, "Deep")}},
			},
		}

		got, err := wikihtml.RenderHTML(src, nodes)

		require.NoError(t, err)
		assert.Equal(t, "<h8>Deep</h8>", got)
	})

	t.Run("empty heading emits the tag pair", func(t *testing.T) {
		t.Parallel()

		got, err := wikihtml.RenderHTML("====", []wikihtml.Node{&wikihtml.Heading{Level: 2}})

		require.NoError(t, err)
		assert.Equal(t, "<h4></h4>", got)
	})

	t.Run("preformatted wraps rendered children", func(t *testing.T) {
		t.Parallel()

		src := " code ''here''"
		nodes := []wikihtml.Node{
			&wikihtml.Preformatted{
				Nodes: []wikihtml.Node{
					&wikihtml.Text{Span: spanOf(t, src, "code ")},
					&wikihtml.Italic{},
					&wikihtml.Text{Span: spanOf(t, src, "here")},
					&wikihtml.Italic{},
				},
			},
		}

		got, err := wikihtml.RenderHTML(src, nodes)

		require.NoError(t, err)
		assert.Equal(t, "<pre>code <i>here</i></pre>", got)
	})

	t.Run("horizontal divider", func(t *testing.T) {
		t.Parallel()

		got, err := wikihtml.RenderHTML("----", []wikihtml.Node{&wikihtml.HorizontalDivider{Span: wikihtml.Span{End: 4}}})

		require.NoError(t, err)
		assert.Equal(t, "<hr/>", got)
	})

	t.Run("unordered list with two items", func(t *testing.T) {
		t.Parallel()

		src := "* a\n* b"
		nodes := []wikihtml.Node{
			&wikihtml.UnorderedList{
				Items: []wikihtml.ListItem{
					{Nodes: []wikihtml.Node{&wikihtml.Text{Span: wikihtml.Span{Start: 2, End: 3}}}},
					{Nodes: []wikihtml.Node{&wikihtml.Text{Span: wikihtml.Span{Start: 6, End: 7}}}},
				},
			},
		}

		got, err := wikihtml.RenderHTML(src, nodes)

		require.NoError(t, err)
		assert.Equal(t, "<ul><li>a</li><li>b</li></ul>", got)
	})

	t.Run("ordered list", func(t *testing.T) {
		t.Parallel()

		src := "# one"
		nodes := []wikihtml.Node{
			&wikihtml.OrderedList{
				Items: []wikihtml.ListItem{
					{Nodes: []wikihtml.Node{&wikihtml.Text{Span: spanOf(t, src, "one")}}},
				},
			},
		}

		got, err := wikihtml.RenderHTML(src, nodes)

		require.NoError(t, err)
		assert.Equal(t, "<ol><li>one</li></ol>", got)
	})

	t.Run("empty list emits the container", func(t *testing.T) {
		t.Parallel()

		got, err := wikihtml.RenderHTML("", []wikihtml.Node{&wikihtml.OrderedList{}})

		require.NoError(t, err)
		assert.Equal(t, "<ol></ol>", got)
	})

	t.Run("empty node sequence renders nothing", func(t *testing.T) {
		t.Parallel()

		got, err := wikihtml.RenderHTML("anything", nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRenderHTML_InlineToggles(t *testing.T) {
	t.Parallel()

	t.Run("paired bold is net neutral", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		var state wikihtml.RenderState

		err := wikihtml.RenderNodes(&b, "''''''", []wikihtml.Node{&wikihtml.Bold{}, &wikihtml.Bold{}}, &state)

		require.NoError(t, err)
		assert.Equal(t, "<b></b>", b.String())
		assert.False(t, state.BoldOpen)
	})

	t.Run("flags are independent", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		var state wikihtml.RenderState

		err := wikihtml.RenderNodes(&b, "", []wikihtml.Node{
			&wikihtml.Bold{},
			&wikihtml.Italic{},
			&wikihtml.BoldItalic{},
			&wikihtml.Bold{},
		}, &state)

		require.NoError(t, err)
		assert.Equal(t, "<b><i><b><i></b>", b.String())
		assert.False(t, state.BoldOpen)
		assert.True(t, state.ItalicOpen)
		assert.True(t, state.BoldItalicOpen)
	})

	t.Run("state carries across nesting levels and sections", func(t *testing.T) {
		t.Parallel()

		src := "== ''Title ==\nbody''"
		nodes := []wikihtml.Node{
			&wikihtml.Heading{
				Level: 2,
				Nodes: []wikihtml.Node{
					&wikihtml.Italic{},
					&wikihtml.Text{Span: spanOf(t, src, "Title")},
				},
			},
			&wikihtml.Text{Span: spanOf(t, src, "body")},
			&wikihtml.Italic{},
		}

		got, err := wikihtml.RenderHTML(src, nodes)

		require.NoError(t, err)
		assert.Equal(t, "<h4><i>Title</h4>body</i>", got)
	})

	t.Run("state continues across calls for the same page", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		var state wikihtml.RenderState

		require.NoError(t, wikihtml.RenderNodes(&b, "", []wikihtml.Node{&wikihtml.Bold{}}, &state))
		require.NoError(t, wikihtml.RenderNodes(&b, "", []wikihtml.Node{&wikihtml.Bold{}}, &state))

		assert.Equal(t, "<b></b>", b.String())
	})

	t.Run("no delimiters leaves flags untouched", func(t *testing.T) {
		t.Parallel()

		src := "plain"
		var b strings.Builder
		var state wikihtml.RenderState

		err := wikihtml.RenderNodes(&b, src, []wikihtml.Node{
			&wikihtml.Text{Span: spanOf(t, src, "plain")},
			&wikihtml.HorizontalDivider{},
		}, &state)

		require.NoError(t, err)
		assert.Equal(t, wikihtml.RenderState{}, state)
		assert.NotContains(t, b.String(), "<b>")
		assert.NotContains(t, b.String(), "<i>")
	})
}

func TestRenderHTML_Verbatim(t *testing.T) {
	t.Parallel()

	t.Run("fallback node copies its span byte for byte", func(t *testing.T) {
		t.Parallel()

		src := "see [[Main Page|the <main> page]] & more"
		link := spanOf(t, src, "[[Main Page|the <main> page]]")

		got, err := wikihtml.RenderHTML(src, []wikihtml.Node{&wikihtml.Link{Span: link, Target: "Main Page"}})

		require.NoError(t, err)
		assert.Equal(t, "[[Main Page|the <main> page]]", got)
	})

	t.Run("unknown tag falls back to its span", func(t *testing.T) {
		t.Parallel()

		src := "x<ref>cite</ref>y"
		ref := spanOf(t, src, "<ref>cite</ref>")

		got, err := wikihtml.RenderHTML(src, []wikihtml.Node{
			&wikihtml.Tag{
				Span:  ref,
				Name:  "ref",
				Nodes: []wikihtml.Node{&wikihtml.Text{Span: spanOf(t, src, "cite")}},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "<ref>cite</ref>", got)
	})

	t.Run("syntaxhighlight children are copied raw into pre blocks", func(t *testing.T) {
		t.Parallel()

		src := `<syntaxhighlight lang="rust">let x = 1;</syntaxhighlight>`
		nodes := []wikihtml.Node{
			&wikihtml.Tag{
				Span:  wikihtml.Span{Start: 0, End: len(src)},
				Name:  wikihtml.SyntaxHighlightTag,
				Nodes: []wikihtml.Node{&wikihtml.Text{Span: spanOf(t, src, "let x = 1;")}},
			},
		}

		got, err := wikihtml.RenderHTML(src, nodes)

		require.NoError(t, err)
		assert.Equal(t, "<pre>let x = 1;</pre>", got)
	})

	t.Run("syntaxhighlight does not render child markup", func(t *testing.T) {
		t.Parallel()

		src := "<syntaxhighlight>'''a''' < b</syntaxhighlight>"
		var state wikihtml.RenderState
		var b strings.Builder

		err := wikihtml.RenderNodes(&b, src, []wikihtml.Node{
			&wikihtml.Tag{
				Name:  wikihtml.SyntaxHighlightTag,
				Nodes: []wikihtml.Node{&wikihtml.Bold{Span: spanOf(t, src, "'''a''' < b")}},
			},
		}, &state)

		require.NoError(t, err)
		assert.Equal(t, "<pre>'''a''' < b</pre>", b.String())
		assert.False(t, state.BoldOpen)
	})

	t.Run("category is suppressed", func(t *testing.T) {
		t.Parallel()

		src := "[[Category:Ships]]"

		got, err := wikihtml.RenderHTML(src, []wikihtml.Node{
			&wikihtml.Category{Span: wikihtml.Span{End: len(src)}, Target: "Category:Ships"},
		})

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRenderHTML_MalformedSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		span wikihtml.Span
	}{
		{name: "end past text", src: "abc", span: wikihtml.Span{Start: 1, End: 4}},
		{name: "negative start", src: "abc", span: wikihtml.Span{Start: -1, End: 2}},
		{name: "reversed", src: "abc", span: wikihtml.Span{Start: 2, End: 1}},
		{name: "splits a character", src: "héllo", span: wikihtml.Span{Start: 0, End: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := wikihtml.RenderHTML(tt.src, []wikihtml.Node{&wikihtml.Text{Span: tt.span}})

			require.Error(t, err)
			assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
		})
	}
}

func TestSliceSpan(t *testing.T) {
	t.Parallel()

	got, err := wikihtml.SliceSpan("héllo", wikihtml.Span{Start: 1, End: 3})

	require.NoError(t, err)
	assert.Equal(t, "é", got)
}
