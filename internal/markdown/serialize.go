// Package markdown converts the rich-text editor's serialized document
// tree into flat Markdown and assembles export documents.
package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToMarkdown renders a serialized document tree (HTML produced by the
// external editing surface) as flat Markdown. The tag subset is fixed:
// paragraphs, line breaks, flat lists, bold, italic, and grouping
// blocks; unknown elements pass their content through unmarked and text
// is emitted literally (Markdown metacharacters are not escaped).
// Nested lists flatten onto the enclosing list's prefix.
//
// If the input cannot be traversed the raw input is returned unchanged.
func ToMarkdown(raw string) string {
	if raw == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	body := findElement(doc, atom.Body)
	if body == nil {
		return raw
	}

	w := &treeWalker{}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if out := w.serialize(c, ""); strings.TrimSpace(out) != "" {
			w.push(strings.TrimSpace(out))
		}
	}
	return strings.TrimSpace(strings.Join(w.lines, "\n\n"))
}

// treeWalker accumulates output lines during the recursive walk. Block
// elements push lines; inline elements return rendered text upward.
type treeWalker struct {
	lines []string
}

func (w *treeWalker) push(line string) {
	w.lines = append(w.lines, line)
}

// serialize walks one node. prefix is the list-item prefix supplied by
// the nearest enclosing list, threaded down the recursion.
func (w *treeWalker) serialize(n *html.Node, prefix string) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type != html.ElementNode {
		return ""
	}

	switch n.DataAtom {
	case atom.P:
		if content := strings.TrimSpace(w.inline(n, prefix)); content != "" {
			w.push(content)
		}
		return ""
	case atom.Br:
		w.push("")
		return ""
	case atom.Ul:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.serialize(c, "- ")
		}
		return ""
	case atom.Ol:
		i := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			i++
			w.serialize(c, fmt.Sprintf("%d. ", i))
		}
		return ""
	case atom.Li:
		if content := strings.TrimSpace(w.inline(n, prefix)); content != "" {
			w.push(prefix + content)
		}
		return ""
	case atom.Strong, atom.B:
		return "**" + w.inline(n, prefix) + "**"
	case atom.Em, atom.I:
		return "_" + w.inline(n, prefix) + "_"
	case atom.Div, atom.Section, atom.Article:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.serialize(c, prefix)
		}
		w.push("")
		return ""
	default:
		return w.inline(n, prefix)
	}
}

// inline concatenates the rendered children of n.
func (w *treeWalker) inline(n *html.Node, prefix string) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(w.serialize(c, prefix))
	}
	return sb.String()
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
