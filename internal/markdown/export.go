package markdown

import (
	"strings"

	"github.com/ellard/chrononotes/internal/fuzzydate"
	"github.com/ellard/chrononotes/internal/models"
)

const blockSeparator = "\n\n---\n\n"

// BuildExport renders a set of notes as one portable Markdown document.
// Notes are ordered chronologically regardless of the on-screen filter
// order; each block carries a heading, a date line, a tags line, and the
// serialized body, with horizontal rules between blocks.
func BuildExport(notes []models.Note) string {
	sorted := fuzzydate.SortByDate(notes)
	blocks := make([]string, 0, len(sorted))
	for _, n := range sorted {
		title := strings.TrimSpace(n.Title)
		if title == "" {
			title = "Untitled note"
		}
		tags := "No tags"
		if len(n.Tags) > 0 {
			tags = strings.Join(n.Tags, ", ")
		}
		block := strings.Join([]string{
			"# " + title,
			"Date: " + fuzzydate.Summary(n),
			"Tags: " + tags,
			"",
			ToMarkdown(n.Body),
		}, "\n")
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, blockSeparator)
}
