package store

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ellard/chrononotes/internal/models"
)

// DeriveProjectID maps a folder path to a stable project id. The empty
// path yields the sentinel "default"; otherwise the path is carried
// verbatim under a fixed prefix, so distinct paths never collide and
// the same path always derives the same id.
func DeriveProjectID(path string) string {
	if path == "" {
		return "default"
	}
	return "path:" + path
}

// LabelFromPath derives a display label: the last non-empty path
// segment after stripping trailing separators, the full trimmed path if
// no segment is extractable, or "Default" for the empty path.
func LabelFromPath(path string) string {
	if path == "" {
		return "Default"
	}
	trimmed := strings.TrimRight(path, `/\`)
	segments := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return trimmed
	}
	return segments[len(segments)-1]
}

// CurrentProject reads the global current-project record. An absent,
// malformed, or incomplete record yields the default project.
func (s *Store) CurrentProject() models.Project {
	raw, ok := s.getSetting(settingCurrentProject)
	if !ok {
		return models.DefaultProject()
	}
	var p models.Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return models.DefaultProject()
	}
	if p.ID == "" || p.Label == "" {
		return models.DefaultProject()
	}
	return p
}

// SetCurrentProject overwrites the global current-project record.
// Write failures are logged and swallowed.
func (s *Store) SetCurrentProject(p models.Project) {
	raw, err := json.Marshal(p)
	if err != nil {
		slog.Warn("store: marshal project failed", slog.String("error", err.Error()))
		return
	}
	if err := s.setSetting(settingCurrentProject, string(raw)); err != nil {
		slog.Warn("store: save current project failed", slog.String("error", err.Error()))
	}
}
