package telegraph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// allowedTags is the fixed set of element tags the Telegraph API
// accepts in page content. Anything else is rejected by the service.
var allowedTags = map[string]bool{
	"a": true, "aside": true, "b": true, "blockquote": true, "br": true,
	"code": true, "em": true, "figcaption": true, "figure": true,
	"h3": true, "h4": true, "hr": true, "i": true, "iframe": true,
	"img": true, "li": true, "ol": true, "p": true, "pre": true,
	"s": true, "strong": true, "u": true, "ul": true, "video": true,
}

// allowedAttrs lists the attributes the API accepts per tag.
var allowedAttrs = map[string]map[string]bool{
	"a":      {"href": true, "title": true},
	"img":    {"src": true, "alt": true, "title": true},
	"iframe": {"src": true, "width": true, "height": true},
	"video":  {"src": true, "width": true, "height": true, "controls": true},
}

// Node is one unit of page content: either raw text (Tag empty, Text
// set) or an element with a tag, optional attributes and ordered
// children. On the wire a text node is a bare JSON string and an
// element is {"tag": ..., "attrs": ..., "children": ...}.
type Node struct {
	Text     string
	Tag      string
	Attrs    map[string]string
	Children []Node
}

// TextNode returns a text content node.
func TextNode(text string) Node {
	return Node{Text: text}
}

// Element returns an element node with the given tag, attributes and
// children. attrs may be nil.
func Element(tag string, attrs map[string]string, children ...Node) Node {
	return Node{Tag: tag, Attrs: attrs, Children: children}
}

// IsText reports whether the node is a raw text node.
func (n Node) IsText() bool {
	return n.Tag == ""
}

// nodeJSON is the wire shape of an element node.
type nodeJSON struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// MarshalJSON encodes text nodes as bare strings and element nodes as
// {tag, attrs?, children?} objects, matching the API's content shape.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.IsText() {
		return json.Marshal(n.Text)
	}
	return json.Marshal(nodeJSON{Tag: n.Tag, Attrs: n.Attrs, Children: n.Children})
}

// UnmarshalJSON decodes either wire form. An object without a tag
// field fails with *DecodeError.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &DecodeError{Detail: "empty content node"}
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return &DecodeError{Detail: fmt.Sprintf("text node: %v", err)}
		}
		*n = Node{Text: text}
		return nil
	}

	var elem nodeJSON
	if err := json.Unmarshal(trimmed, &elem); err != nil {
		return &DecodeError{Detail: fmt.Sprintf("element node: %v", err)}
	}
	if elem.Tag == "" {
		return &DecodeError{Field: "tag"}
	}
	*n = Node{Tag: elem.Tag, Attrs: elem.Attrs, Children: elem.Children}
	return nil
}

// Validate checks that every element in the subtree uses a tag from
// the allowed set. The remote service enforces the same rule; checking
// locally turns the rejection into a *ValidationError before any
// network call.
func (n Node) Validate() error {
	if n.IsText() {
		return nil
	}
	if !allowedTags[n.Tag] {
		return &ValidationError{Field: "content", Reason: fmt.Sprintf("tag %q is not allowed", n.Tag)}
	}
	for _, child := range n.Children {
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}
