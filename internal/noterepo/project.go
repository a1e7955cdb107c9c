package noterepo

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ellard/chrononotes/internal/apperr"
	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/store"
)

// SwitchProject makes the project derived from path the active one,
// records it as current, and loads its persisted state with the starter
// notes as fallback. The previous project's state was already persisted
// write-through, so nothing is flushed here.
func (r *Repository) SwitchProject(path string) models.Project {
	p := models.Project{
		ID:    store.DeriveProjectID(path),
		Label: store.LabelFromPath(path),
		Path:  path,
	}
	r.switchTo(p, StarterNotes())
	return p
}

// CreateProject creates the folder name under parent, switches to the
// new project, and loads its state with an empty fallback. Only one
// creation may be in flight at a time; concurrent calls get ErrBusy.
func (r *Repository) CreateProject(parent, name string) (models.Project, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.Project{}, fmt.Errorf("project name is required")
	}
	if parent == "" {
		return models.Project{}, fmt.Errorf("parent folder is required")
	}

	r.mu.Lock()
	if r.creatingProject {
		r.mu.Unlock()
		return models.Project{}, apperr.ErrBusy
	}
	r.creatingProject = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.creatingProject = false
		r.mu.Unlock()
	}()

	target := filepath.Join(parent, trimmed)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return models.Project{}, fmt.Errorf("create project folder: %w", err)
	}

	p := models.Project{
		ID:    store.DeriveProjectID(target),
		Label: store.LabelFromPath(target),
		Path:  target,
	}
	r.switchTo(p, nil)
	return p, nil
}

func (r *Repository) switchTo(p models.Project, fallback []models.Note) {
	r.mu.Lock()
	r.store.SetCurrentProject(p)
	st := r.store.LoadState(p.ID, fallback)
	r.project = p
	r.notes = st.Notes
	r.selectedID = st.SelectedID
	r.tagFilter = st.TagFilter
	r.zoom = st.Zoom
	hook := r.onProjectSwitch
	r.mu.Unlock()

	slog.Info("switched project",
		slog.String("project", p.ID),
		slog.String("label", p.Label))
	if hook != nil {
		hook(p)
	}
}
