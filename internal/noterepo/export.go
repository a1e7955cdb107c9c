package noterepo

import (
	"github.com/ellard/chrononotes/internal/apperr"
	"github.com/ellard/chrononotes/internal/markdown"
	"github.com/ellard/chrononotes/internal/models"
)

// Export scopes.
const (
	ScopeAll      = "all"
	ScopeFiltered = "filtered"
)

// ExportMarkdown renders the notes in scope as one Markdown document.
// An empty scope is a user-input error reported before any file-write
// collaborator is touched.
func (r *Repository) ExportMarkdown(scope string) (string, error) {
	r.mu.Lock()
	notes := copyNotes(r.notes)
	if scope == ScopeFiltered {
		notes = copyNotes(FilterByTag(r.notes, r.tagFilter))
	}
	r.mu.Unlock()

	if len(notes) == 0 {
		return "", apperr.ErrEmptyExport
	}
	return markdown.BuildExport(notes), nil
}

// StarterNotes is the seeded collection shown the first time a project
// namespace is opened.
func StarterNotes() []models.Note {
	margin := 3
	return []models.Note{
		{
			ID:        "1",
			Title:     "First note",
			Body:      "<p>Sketch the early concept for a time-oriented note system.</p>",
			DateType:  models.DateTypeExact,
			DateStart: "2024-02-10",
		},
		{
			ID:              "2",
			Title:           "Trip to X",
			Body:            "<p>Outline travel logistics, highlights, and people to meet.</p>",
			DateType:        models.DateTypeApproxRange,
			DateStart:       "2023-08-15",
			RangeMarginDays: &margin,
		},
		{
			ID:        "3",
			Title:     "Workshop recap",
			Body:      "<p>Summaries of the design sessions and key follow-ups.</p>",
			DateType:  models.DateTypeBroadPeriod,
			DateStart: "2022-09-01",
			DateEnd:   "2022-12-31",
		},
	}
}
