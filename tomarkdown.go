package telegraph

import htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

// ContentToMarkdown converts a content node sequence back to Markdown,
// the inverse convenience of ContentFromMarkdown. Headings come back at
// the level Telegraph stores (h3/h4), not the level the original
// Markdown used — the degradation table is lossy by design of the API.
func ContentToMarkdown(nodes []Node) (string, error) {
	return htmltomarkdown.ConvertString(ContentToHTML(nodes))
}
