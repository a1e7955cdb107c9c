// Package noterepo holds the in-memory note collection and view state
// for the active project and writes every mutation through to the
// project store.
package noterepo

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/store"
)

// ProjectSwitchFunc is called after the active project changes, outside
// the repository lock.
type ProjectSwitchFunc func(p models.Project)

// NoteEventFunc is called after a note mutation. kind is "created" or
// "updated".
type NoteEventFunc func(kind, noteID string)

// Repository is the single orchestration point for note and view-state
// mutations. All methods are safe for concurrent use; internally they
// serialize on one lock, so persisted writes stay last-writer-wins from
// a single logical caller.
type Repository struct {
	mu sync.Mutex

	store      *store.Store
	project    models.Project
	notes      []models.Note
	selectedID string
	tagFilter  string
	zoom       models.Zoom

	creatingProject bool

	now func() time.Time

	onProjectSwitch ProjectSwitchFunc
	onNoteEvent     NoteEventFunc
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithProjectSwitchHook registers a callback fired after project switches.
func WithProjectSwitchHook(fn ProjectSwitchFunc) Option {
	return func(r *Repository) { r.onProjectSwitch = fn }
}

// WithNoteEventHook registers a callback fired after note mutations.
func WithNoteEventHook(fn NoteEventFunc) Option {
	return func(r *Repository) { r.onNoteEvent = fn }
}

// New creates a Repository bound to the store's current project,
// loading that project's persisted state with the starter notes as
// fallback.
func New(s *store.Store, opts ...Option) *Repository {
	r := &Repository{
		store: s,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.project = s.CurrentProject()
	st := s.LoadState(r.project.ID, StarterNotes())
	r.notes = st.Notes
	r.selectedID = st.SelectedID
	r.tagFilter = st.TagFilter
	r.zoom = st.Zoom

	slog.Info("repository loaded",
		slog.String("project", r.project.ID),
		slog.Int("notes", len(r.notes)))
	return r
}

// Project returns the active project.
func (r *Repository) Project() models.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.project
}

// Notes returns a copy of the active project's note collection.
func (r *Repository) Notes() []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyNotes(r.notes)
}

// FilteredNotes returns the notes matching the active tag filter, in
// collection order.
func (r *Repository) FilteredNotes() []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyNotes(FilterByTag(r.notes, r.tagFilter))
}

// ViewState is a snapshot of the active project's view state.
type ViewState struct {
	Project    models.Project `json:"project"`
	SelectedID string         `json:"selectedId,omitempty"`
	TagFilter  string         `json:"tagFilter"`
	Zoom       models.Zoom    `json:"zoom"`
}

// State returns a snapshot of the current view state.
func (r *Repository) State() ViewState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ViewState{
		Project:    r.project,
		SelectedID: r.selectedID,
		TagFilter:  r.tagFilter,
		Zoom:       r.zoom,
	}
}

// Select records the selected note id; an empty id clears selection.
func (r *Repository) Select(noteID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectedID = noteID
	r.persist()
}

// SetTagFilter records the tag filter query.
func (r *Repository) SetTagFilter(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tagFilter = query
	r.persist()
}

// SetZoom records the timeline granularity; anything but months maps to
// years.
func (r *Repository) SetZoom(zoom models.Zoom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if zoom != models.ZoomMonths {
		zoom = models.ZoomYears
	}
	r.zoom = zoom
	r.persist()
}

// persist writes the full active-project state through to the store.
// Caller must hold r.mu. Persistence is best-effort; the store logs
// and swallows write failures.
func (r *Repository) persist() {
	r.store.SaveState(r.project.ID, store.State{
		Notes:      r.notes,
		SelectedID: r.selectedID,
		TagFilter:  r.tagFilter,
		Zoom:       r.zoom,
	})
}

func (r *Repository) noteEvent(kind, id string) {
	if r.onNoteEvent != nil {
		r.onNoteEvent(kind, id)
	}
}

func copyNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	copy(out, notes)
	return out
}
