package telegraph

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is the shared parser. goldmark parsers are safe for
// concurrent use.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// ContentFromMarkdown converts Markdown source into a flat sequence of
// content nodes. Conversion is deterministic and never fails: every
// construct maps onto the allowed tag set per the package degradation
// table, and raw HTML embedded in the source is routed through the
// same sanitizer as ContentFromHTML.
func ContentFromMarkdown(source string) []Node {
	src := []byte(source)
	doc := markdown.Parser().Parse(text.NewReader(src))
	w := &mdWalker{source: src}
	return w.blocks(doc)
}

// mdWalker walks a goldmark AST and emits Telegraph nodes.
type mdWalker struct {
	source []byte
}

func (w *mdWalker) blocks(parent ast.Node) []Node {
	var out []Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, w.block(n)...)
	}
	return out
}

func (w *mdWalker) block(n ast.Node) []Node {
	switch n := n.(type) {
	case *ast.Heading:
		return []Node{w.heading(n)}
	case *ast.Paragraph:
		// A paragraph holding a lone image becomes a block-level
		// figure, matching the API's expectation that figures sit at
		// content level rather than inside p.
		if img, ok := loneImage(n); ok {
			return []Node{w.figure(img)}
		}
		return []Node{Element("p", nil, w.inlines(n)...)}
	case *ast.TextBlock:
		// Tight list items carry bare text blocks instead of paragraphs.
		return w.inlines(n)
	case *ast.Blockquote:
		return []Node{Element("blockquote", nil, w.blocks(n)...)}
	case *ast.List:
		return []Node{w.list(n)}
	case *ast.FencedCodeBlock:
		return []Node{w.codeBlock(n)}
	case *ast.CodeBlock:
		return []Node{w.codeBlock(n)}
	case *ast.ThematicBreak:
		return []Node{Element("hr", nil)}
	case *ast.HTMLBlock:
		return ContentFromHTML(w.htmlBlockText(n))
	default:
		// Unsupported block: keep the text content in a paragraph.
		if kids := w.inlines(n); len(kids) > 0 {
			return []Node{Element("p", nil, kids...)}
		}
		return nil
	}
}

// heading maps Markdown heading levels onto Telegraph's two supported
// sizes: 1→h3, 2→h4, 3-4 degrade to bold, 5-6 to italic.
func (w *mdWalker) heading(n *ast.Heading) Node {
	kids := w.inlines(n)
	switch n.Level {
	case 1:
		return Element("h3", nil, kids...)
	case 2:
		return Element("h4", nil, kids...)
	case 3, 4:
		return Element("p", nil, Element("strong", nil, kids...))
	default:
		return Element("p", nil, Element("em", nil, kids...))
	}
}

func (w *mdWalker) list(n *ast.List) Node {
	tag := "ul"
	if n.IsOrdered() {
		tag = "ol"
	}
	var items []Node
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		items = append(items, Element("li", nil, w.blocks(item)...))
	}
	return Element(tag, nil, items...)
}

// codeBlock renders fenced and indented code blocks as pre > code.
// Telegraph has no attribute for the fence language, so it is dropped.
func (w *mdWalker) codeBlock(n ast.Node) Node {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	code := strings.TrimRight(sb.String(), "\n")
	return Element("pre", nil, Element("code", nil, TextNode(code)))
}

func (w *mdWalker) htmlBlockText(n *ast.HTMLBlock) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	if n.HasClosure() {
		sb.Write(n.ClosureLine.Value(w.source))
	}
	return sb.String()
}

func (w *mdWalker) inlines(parent ast.Node) []Node {
	if hasRawHTML(parent) {
		return w.inlinesWithHTML(parent)
	}
	var out []Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, w.inline(n)...)
	}
	return out
}

func hasRawHTML(parent ast.Node) bool {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.RawHTML); ok {
			return true
		}
	}
	return false
}

// inlinesWithHTML handles inline streams that embed raw HTML. goldmark
// parses each raw tag as its own node, with the wrapped content sitting
// between the opening and closing tags as ordinary inlines, so the
// fragments cannot be sanitized one by one. The whole stream is
// serialized back to HTML instead, raw tags verbatim and converted
// nodes re-rendered, and parsed as one fragment so the embedded
// elements keep their content nested inside them.
func (w *mdWalker) inlinesWithHTML(parent ast.Node) []Node {
	var sb strings.Builder
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if raw, ok := n.(*ast.RawHTML); ok {
			sb.WriteString(w.rawHTMLText(raw))
			continue
		}
		sb.WriteString(ContentToHTML(w.inline(n)))
	}
	return ContentFromHTML(sb.String())
}

func (w *mdWalker) rawHTMLText(n *ast.RawHTML) string {
	var sb strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(w.source))
	}
	return sb.String()
}

func (w *mdWalker) inline(n ast.Node) []Node {
	switch n := n.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(w.source))
		if n.HardLineBreak() {
			return []Node{TextNode(s), Element("br", nil)}
		}
		if n.SoftLineBreak() {
			return []Node{TextNode(s + "\n")}
		}
		return []Node{TextNode(s)}
	case *ast.String:
		return []Node{TextNode(string(n.Value))}
	case *ast.CodeSpan:
		return []Node{Element("code", nil, TextNode(w.plainText(n)))}
	case *ast.Emphasis:
		tag := "em"
		if n.Level == 2 {
			tag = "strong"
		}
		return []Node{Element(tag, nil, w.inlines(n)...)}
	case *east.Strikethrough:
		return []Node{Element("s", nil, w.inlines(n)...)}
	case *ast.Link:
		attrs := map[string]string{"href": string(n.Destination)}
		if title := string(n.Title); title != "" {
			attrs["title"] = title
		}
		return []Node{Element("a", attrs, w.inlines(n)...)}
	case *ast.AutoLink:
		href := string(n.URL(w.source))
		label := string(n.Label(w.source))
		return []Node{Element("a", map[string]string{"href": href}, TextNode(label))}
	case *ast.Image:
		// An image in running text stays inline as a bare img.
		return []Node{w.img(n)}
	default:
		// Unsupported inline: keep the text content.
		if s := w.plainText(n); s != "" {
			return []Node{TextNode(s)}
		}
		return nil
	}
}

func (w *mdWalker) img(n *ast.Image) Node {
	attrs := map[string]string{"src": string(n.Destination)}
	if alt := w.plainText(n); alt != "" {
		attrs["alt"] = alt
	}
	return Element("img", attrs)
}

// figure wraps an image into figure > img, with a figcaption carrying
// the image title when one is present.
func (w *mdWalker) figure(n *ast.Image) Node {
	kids := []Node{w.img(n)}
	if title := string(n.Title); title != "" {
		kids = append(kids, Element("figcaption", nil, TextNode(title)))
	}
	return Element("figure", nil, kids...)
}

// loneImage reports whether the paragraph consists of a single image.
func loneImage(p *ast.Paragraph) (*ast.Image, bool) {
	first := p.FirstChild()
	if first == nil || first.NextSibling() != nil {
		return nil, false
	}
	img, ok := first.(*ast.Image)
	return img, ok
}

// plainText collects the raw text of a subtree, used for code spans,
// image alt text, and unsupported constructs.
func (w *mdWalker) plainText(n ast.Node) string {
	var sb strings.Builder
	w.collectText(n, &sb)
	return sb.String()
}

func (w *mdWalker) collectText(n ast.Node, sb *strings.Builder) {
	switch n := n.(type) {
	case *ast.Text:
		sb.Write(n.Segment.Value(w.source))
	case *ast.String:
		sb.Write(n.Value)
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.collectText(c, sb)
		}
	}
}
