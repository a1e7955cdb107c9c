package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ellard/chrononotes/internal/apperr"
	"github.com/ellard/chrononotes/internal/exporter"
	"github.com/ellard/chrononotes/internal/fuzzydate"
	"github.com/ellard/chrononotes/internal/markdown"
	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/noterepo"
	"github.com/ellard/chrononotes/internal/timeline"
)

const previewLength = 160

// Handler holds API route handlers.
type Handler struct {
	repo     *noterepo.Repository
	renderer *markdown.Renderer
}

// NewHandler creates a new Handler.
func NewHandler(repo *noterepo.Repository) *Handler {
	return &Handler{repo: repo, renderer: markdown.NewRenderer()}
}

// Timeline handles GET /timeline. The zoom query parameter overrides
// the stored granularity for this response only; notes are the ones
// matching the active tag filter.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	zoom := h.repo.State().Zoom
	if q := r.URL.Query().Get("zoom"); q != "" {
		if models.Zoom(q) == models.ZoomMonths {
			zoom = models.ZoomMonths
		} else {
			zoom = models.ZoomYears
		}
	}

	groups := timeline.BuildGroups(h.repo.FilteredNotes(), zoom)
	resp := TimelineResponse{Zoom: zoom, Groups: make([]TimelineGroup, len(groups))}
	for i, g := range groups {
		tg := TimelineGroup{Label: g.Label, Notes: make([]TimelineNote, len(g.Notes))}
		for j, n := range g.Notes {
			tg.Notes[j] = TimelineNote{
				ID:          n.ID,
				Title:       n.Title,
				DateSummary: fuzzydate.Summary(n),
				Preview:     markdown.Preview(n.Body, previewLength),
				Tags:        n.Tags,
			}
		}
		resp.Groups[i] = tg
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListNotes handles GET /notes. With ?filtered=true only notes matching
// the active tag filter are returned.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes := h.repo.Notes()
	if r.URL.Query().Get("filtered") == "true" {
		notes = h.repo.FilteredNotes()
	}
	writeJSON(w, http.StatusOK, NotesResponse{Notes: notes, Total: len(notes)})
}

// CreateNote handles POST /notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	note := h.repo.CreateNote()
	writeJSON(w, http.StatusCreated, note)
}

// GetNote handles GET /notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	note, ok := h.repo.Note(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody(apperr.ErrNotFound.Error()))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// UpdateNote handles PATCH /notes/{id} with a partial field merge.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id := chi.URLParam(r, "id")

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, ok := h.repo.UpdateNote(id, req.patch())
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody(apperr.ErrNotFound.Error()))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// AddAttachment handles POST /notes/{id}/attachments.
func (h *Handler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AddAttachmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.FileName == "" || req.FilePath == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("fileName and filePath are required"))
		return
	}
	att, ok := h.repo.AddAttachment(id, req.FileName, req.FilePath)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody(apperr.ErrNotFound.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, att)
}

// GetState handles GET /state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.State())
}

// SetFilter handles PUT /state/filter.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req SetFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.repo.SetTagFilter(req.Query)
	writeJSON(w, http.StatusOK, h.repo.State())
}

// SetZoom handles PUT /state/zoom.
func (h *Handler) SetZoom(w http.ResponseWriter, r *http.Request) {
	var req SetZoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.repo.SetZoom(req.Zoom)
	writeJSON(w, http.StatusOK, h.repo.State())
}

// SetSelection handles PUT /state/selection.
func (h *Handler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SetSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.repo.Select(req.ID)
	writeJSON(w, http.StatusOK, h.repo.State())
}

// GetProject handles GET /project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.Project())
}

// SwitchProject handles PUT /project.
func (h *Handler) SwitchProject(w http.ResponseWriter, r *http.Request) {
	var req SwitchProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	p := h.repo.SwitchProject(req.Path)
	writeJSON(w, http.StatusOK, p)
}

// CreateProject handles POST /projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	p, err := h.repo.CreateProject(req.Parent, req.Name)
	if err != nil {
		if errors.Is(err, apperr.ErrBusy) {
			writeJSON(w, http.StatusConflict, errorBody("project creation already in progress"))
			return
		}
		slog.Error("create project failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetExport handles GET /export, returning the export document without
// writing a file. format=html renders the Markdown for preview.
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = noterepo.ScopeAll
	}
	doc, err := h.repo.ExportMarkdown(scope)
	if err != nil {
		if errors.Is(err, apperr.ErrEmptyExport) {
			writeJSON(w, http.StatusBadRequest, errorBody("there are no notes to export"))
			return
		}
		slog.Error("export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(h.renderer.HTML(doc)))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

// Export handles POST /export: renders the scoped document and writes
// it to the requested path. The empty-scope check runs before any file
// is touched; write failures surface as a one-shot error.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	scope := req.Scope
	if scope == "" {
		scope = noterepo.ScopeAll
	}

	doc, err := h.repo.ExportMarkdown(scope)
	if err != nil {
		if errors.Is(err, apperr.ErrEmptyExport) {
			writeJSON(w, http.StatusBadRequest, errorBody("there are no notes to export"))
			return
		}
		slog.Error("export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	if err := exporter.WriteFile(req.Path, []byte(doc)); err != nil {
		slog.Error("export write failed",
			slog.String("path", req.Path),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("unable to export notes right now"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": req.Path})
}
