package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// PlainText extracts the text content of a serialized document tree,
// trimmed. On traversal failure the raw input is returned unchanged.
func PlainText(raw string) string {
	if raw == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	var sb strings.Builder
	collectText(doc, &sb)
	return strings.TrimSpace(sb.String())
}

// Preview returns a plain-text body preview capped at maxLen runes,
// with a trailing ellipsis when truncated.
func Preview(raw string, maxLen int) string {
	text := PlainText(raw)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return strings.TrimRight(string(runes[:maxLen]), " \t\n") + "…"
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// Renderer converts exported Markdown to HTML for preview responses.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with the default goldmark pipeline.
func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// HTML renders Markdown to HTML, returning the raw content if the
// conversion fails.
func (r *Renderer) HTML(content string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}
