package telegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentFromHTML(t *testing.T) {
	nodes := ContentFromHTML(`<p>hi <b>there</b></p>`)
	require.Len(t, nodes, 1)
	assert.Equal(t,
		Element("p", nil, TextNode("hi "), Element("b", nil, TextNode("there"))),
		nodes[0])
}

func TestContentFromHTMLUnwrapsUnknownTags(t *testing.T) {
	nodes := ContentFromHTML(`<div><span>kept text</span></div>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, TextNode("kept text"), nodes[0])
}

func TestContentFromHTMLDropsScriptAndStyle(t *testing.T) {
	nodes := ContentFromHTML(`<p>safe</p><script>alert(1)</script><style>p{}</style>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, Element("p", nil, TextNode("safe")), nodes[0])
}

func TestContentFromHTMLFiltersAttributes(t *testing.T) {
	nodes := ContentFromHTML(`<a href="https://x.test" onclick="evil()" title="t">go</a>`)
	require.Len(t, nodes, 1)
	a := nodes[0]
	assert.Equal(t, "https://x.test", a.Attrs["href"])
	assert.Equal(t, "t", a.Attrs["title"])
	assert.NotContains(t, a.Attrs, "onclick")
}

func TestContentFromHTMLNoAttrsForPlainTags(t *testing.T) {
	nodes := ContentFromHTML(`<p class="fancy" id="x">text</p>`)
	require.Len(t, nodes, 1)
	assert.Nil(t, nodes[0].Attrs)
}

func TestContentFromHTMLSkipsInterElementWhitespace(t *testing.T) {
	nodes := ContentFromHTML("<p>one</p>\n  <p>two</p>")
	require.Len(t, nodes, 2)
	assert.Equal(t, "p", nodes[0].Tag)
	assert.Equal(t, "p", nodes[1].Tag)
}

func TestContentFromHTMLComments(t *testing.T) {
	nodes := ContentFromHTML(`<!-- hidden --><p>shown</p>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, Element("p", nil, TextNode("shown")), nodes[0])
}

func TestContentToHTML(t *testing.T) {
	nodes := []Node{
		Element("h3", nil, TextNode("Title")),
		Element("p", nil,
			TextNode("a <b> & char "),
			Element("a", map[string]string{"href": "https://x.test"}, TextNode("link")),
		),
		Element("hr", nil),
	}
	got := ContentToHTML(nodes)
	want := `<h3>Title</h3><p>a &lt;b&gt; &amp; char <a href="https://x.test">link</a></p><hr/>`
	assert.Equal(t, want, got)
}

func TestContentToHTMLRoundTrip(t *testing.T) {
	original := []Node{
		Element("p", nil, TextNode("hello "), Element("em", nil, TextNode("world"))),
		Element("figure", nil,
			Element("img", map[string]string{"src": "/file/x.jpg", "alt": "x"}),
			Element("figcaption", nil, TextNode("caption")),
		),
	}
	back := ContentFromHTML(ContentToHTML(original))
	assert.Equal(t, original, back)
}
