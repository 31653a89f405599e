package telegraph

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContentFromHTML converts an HTML fragment into a sanitized sequence
// of content nodes. Elements outside the allowed tag set are unwrapped:
// the tag is discarded but its children are kept, so no text content is
// lost. script and style subtrees are dropped entirely, and attributes
// are filtered to the set the API accepts for each tag.
func ContentFromHTML(fragment string) []Node {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		// ParseFragment only fails on reader errors, which a
		// strings.Reader never produces. Keep the raw text as a
		// fallback so conversion stays total.
		return []Node{TextNode(fragment)}
	}

	var out []Node
	for _, n := range parsed {
		out = append(out, sanitize(n)...)
	}
	return out
}

func sanitize(n *html.Node) []Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return []Node{TextNode(n.Data)}
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return nil
		}
		kids := sanitizeChildren(n)
		if !allowedTags[n.Data] {
			return kids
		}
		return []Node{Element(n.Data, filterAttrs(n), kids...)}
	case html.DocumentNode:
		return sanitizeChildren(n)
	default:
		// Comments, doctypes.
		return nil
	}
}

func sanitizeChildren(n *html.Node) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, sanitize(c)...)
	}
	return out
}

// filterAttrs keeps only the attributes the API accepts for the tag.
func filterAttrs(n *html.Node) map[string]string {
	allowed := allowedAttrs[n.Data]
	if allowed == nil {
		return nil
	}
	var attrs map[string]string
	for _, a := range n.Attr {
		if a.Namespace != "" || !allowed[a.Key] {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string, len(n.Attr))
		}
		attrs[a.Key] = a.Val
	}
	return attrs
}

// voidTags never take children or a closing tag in HTML serialization.
var voidTags = map[string]bool{"br": true, "hr": true, "img": true}

// ContentToHTML serializes a content node sequence back to HTML. The
// output round-trips through ContentFromHTML modulo whitespace-only
// text nodes.
func ContentToHTML(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeHTML(&sb, n)
	}
	return sb.String()
}

func writeHTML(sb *strings.Builder, n Node) {
	if n.IsText() {
		sb.WriteString(html.EscapeString(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	// Deterministic attribute order: href/src first, then the rest of
	// the small fixed attribute vocabulary alphabetically.
	for _, key := range attrOrder {
		if val, ok := n.Attrs[key]; ok {
			sb.WriteByte(' ')
			sb.WriteString(key)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(val))
			sb.WriteByte('"')
		}
	}
	if voidTags[n.Tag] {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, child := range n.Children {
		writeHTML(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// attrOrder covers every attribute in allowedAttrs.
var attrOrder = []string{"href", "src", "alt", "title", "width", "height", "controls"}
