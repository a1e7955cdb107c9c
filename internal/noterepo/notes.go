package noterepo

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ellard/chrononotes/internal/models"
)

// FilterByTag returns the notes with at least one tag containing the
// trimmed, lower-cased query as a substring (case-insensitive). An
// empty or whitespace-only query returns the input unchanged.
func FilterByTag(notes []models.Note, query string) []models.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	var out []models.Note
	for _, n := range notes {
		for _, tag := range n.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// CreateNote appends a new empty note dated today, selects it, and
// persists. The id is derived from the current timestamp.
func (r *Repository) CreateNote() models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := models.Note{
		ID:          fmt.Sprintf("note-%d", now.UnixMilli()),
		DateType:    models.DateTypeExact,
		DateStart:   now.Format("2006-01-02"),
		Tags:        []string{},
		Attachments: []models.Attachment{},
	}
	r.notes = append(r.notes, n)
	r.selectedID = n.ID
	r.persist()
	r.noteEvent("created", n.ID)
	return n
}

// Patch is a partial note update; nil fields are left untouched.
type Patch struct {
	Title           *string
	Body            *string
	DateType        *models.DateType
	DateStart       *string
	DateEnd         *string
	RangeMarginDays *int
	Tags            *[]string
}

// UpdateNote merges the patch into the note with the given id and
// persists. It is a no-op when no note matches. Date invariants are not
// enforced on write; violations are only logged.
func (r *Repository) UpdateNote(id string, p Patch) (models.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notes {
		if r.notes[i].ID != id {
			continue
		}
		n := &r.notes[i]
		if p.Title != nil {
			n.Title = *p.Title
		}
		if p.Body != nil {
			n.Body = *p.Body
		}
		if p.DateType != nil {
			n.DateType = *p.DateType
		}
		if p.DateStart != nil {
			n.DateStart = *p.DateStart
		}
		if p.DateEnd != nil {
			n.DateEnd = *p.DateEnd
		}
		if p.RangeMarginDays != nil {
			n.RangeMarginDays = p.RangeMarginDays
		}
		if p.Tags != nil {
			n.Tags = *p.Tags
		}
		n.Normalize()

		if err := n.ValidateDates(); err != nil {
			slog.Warn("note date fields inconsistent",
				slog.String("note", id),
				slog.String("error", err.Error()))
		}

		r.persist()
		r.noteEvent("updated", id)
		return *n, true
	}
	return models.Note{}, false
}

// Note returns the note with the given id.
func (r *Repository) Note(id string) (models.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// AddAttachment registers an opaque file reference on a note. The file
// itself is never read.
func (r *Repository) AddAttachment(noteID, fileName, filePath string) (models.Attachment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notes {
		if r.notes[i].ID != noteID {
			continue
		}
		att := models.Attachment{
			ID:       uuid.NewString(),
			FileName: fileName,
			FilePath: filePath,
		}
		r.notes[i].Attachments = append(r.notes[i].Attachments, att)
		r.persist()
		r.noteEvent("updated", noteID)
		return att, true
	}
	return models.Attachment{}, false
}
