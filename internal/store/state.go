package store

import (
	"encoding/json"
	"log/slog"

	"github.com/ellard/chrononotes/internal/models"
)

// State is the loaded view state of one project. SelectedID is empty
// when no note is selected.
type State struct {
	Notes      []models.Note
	SelectedID string
	TagFilter  string
	Zoom       models.Zoom
}

// LoadState reads a project's persisted state. Every read failure is
// recovered locally: the note collection falls back to fallbackNotes,
// selection to none, the tag filter to empty, and zoom to years unless
// the stored value is exactly "months". Loaded notes are normalized so
// nil tag/attachment slices become empty ones.
func (s *Store) LoadState(projectID string, fallbackNotes []models.Note) State {
	st := State{
		Notes:     parseNotes(s, projectID, fallbackNotes),
		TagFilter: "",
		Zoom:      models.ZoomYears,
	}
	if v, ok := s.getField(projectID, fieldSelected); ok {
		st.SelectedID = v
	}
	if v, ok := s.getField(projectID, fieldTagFilter); ok {
		st.TagFilter = v
	}
	if v, ok := s.getField(projectID, fieldZoom); ok && models.Zoom(v) == models.ZoomMonths {
		st.Zoom = models.ZoomMonths
	}
	return st
}

// SaveState persists a project's state. All writes are best-effort:
// failures are logged and swallowed, never surfaced to the caller.
func (s *Store) SaveState(projectID string, st State) {
	raw, err := json.Marshal(st.Notes)
	if err != nil {
		slog.Warn("store: marshal notes failed",
			slog.String("project", projectID),
			slog.String("error", err.Error()))
	} else if err := s.setField(projectID, fieldNotes, string(raw)); err != nil {
		slog.Warn("store: save notes failed", slog.String("error", err.Error()))
	}

	if st.SelectedID != "" {
		if err := s.setField(projectID, fieldSelected, st.SelectedID); err != nil {
			slog.Warn("store: save selection failed", slog.String("error", err.Error()))
		}
	} else if err := s.deleteField(projectID, fieldSelected); err != nil {
		slog.Warn("store: clear selection failed", slog.String("error", err.Error()))
	}

	if err := s.setField(projectID, fieldTagFilter, st.TagFilter); err != nil {
		slog.Warn("store: save tag filter failed", slog.String("error", err.Error()))
	}
	if err := s.setField(projectID, fieldZoom, string(st.Zoom)); err != nil {
		slog.Warn("store: save zoom failed", slog.String("error", err.Error()))
	}
}

func parseNotes(s *Store, projectID string, fallback []models.Note) []models.Note {
	raw, ok := s.getField(projectID, fieldNotes)
	if !ok {
		return normalizeNotes(fallback)
	}
	var notes []models.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		slog.Warn("store: parse notes failed, using fallback",
			slog.String("project", projectID),
			slog.String("error", err.Error()))
		return normalizeNotes(fallback)
	}
	if notes == nil {
		return normalizeNotes(fallback)
	}
	return normalizeNotes(notes)
}

func normalizeNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	copy(out, notes)
	for i := range out {
		out[i].Normalize()
	}
	return out
}
