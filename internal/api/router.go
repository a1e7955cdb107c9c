package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ellard/chrononotes/internal/noterepo"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(repo *noterepo.Repository, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(repo)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Timeline.
	r.Get("/timeline", h.Timeline)

	// Notes.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Patch("/notes/{id}", h.UpdateNote)
	r.Post("/notes/{id}/attachments", h.AddAttachment)

	// View state.
	r.Get("/state", h.GetState)
	r.Put("/state/filter", h.SetFilter)
	r.Put("/state/zoom", h.SetZoom)
	r.Put("/state/selection", h.SetSelection)

	// Projects.
	r.Get("/project", h.GetProject)
	r.Put("/project", h.SwitchProject)
	r.Post("/projects", h.CreateProject)

	// Export.
	r.Get("/export", h.GetExport)
	r.Post("/export", h.Export)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
