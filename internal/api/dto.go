package api

import (
	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/noterepo"
)

// UpdateNoteRequest is the partial-update body for PATCH /notes/{id}.
// Absent fields are left untouched.
type UpdateNoteRequest struct {
	Title           *string          `json:"title"`
	Body            *string          `json:"body"`
	DateType        *models.DateType `json:"dateType"`
	DateStart       *string          `json:"dateStart"`
	DateEnd         *string          `json:"dateEnd"`
	RangeMarginDays *int             `json:"rangeMarginDays"`
	Tags            *[]string        `json:"tags"`
}

func (req UpdateNoteRequest) patch() noterepo.Patch {
	return noterepo.Patch{
		Title:           req.Title,
		Body:            req.Body,
		DateType:        req.DateType,
		DateStart:       req.DateStart,
		DateEnd:         req.DateEnd,
		RangeMarginDays: req.RangeMarginDays,
		Tags:            req.Tags,
	}
}

// AddAttachmentRequest registers an opaque file reference on a note.
type AddAttachmentRequest struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

// SetFilterRequest carries the tag filter query.
type SetFilterRequest struct {
	Query string `json:"query"`
}

// SetZoomRequest carries the timeline granularity.
type SetZoomRequest struct {
	Zoom models.Zoom `json:"zoom"`
}

// SetSelectionRequest carries the selected note id; empty clears it.
type SetSelectionRequest struct {
	ID string `json:"id"`
}

// SwitchProjectRequest switches the active project by folder path; an
// empty path switches to the default project.
type SwitchProjectRequest struct {
	Path string `json:"path"`
}

// CreateProjectRequest creates a project folder under a parent.
type CreateProjectRequest struct {
	Parent string `json:"parent"`
	Name   string `json:"name"`
}

// ExportRequest writes the export document to a path chosen by the
// caller's save dialog.
type ExportRequest struct {
	Scope string `json:"scope"`
	Path  string `json:"path"`
}

// TimelineNote is the list representation of a note in a timeline bucket.
type TimelineNote struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	DateSummary string   `json:"dateSummary"`
	Preview     string   `json:"preview"`
	Tags        []string `json:"tags"`
}

// TimelineGroup is one timeline bucket in the response.
type TimelineGroup struct {
	Label string         `json:"label"`
	Notes []TimelineNote `json:"notes"`
}

// TimelineResponse is the GET /timeline payload.
type TimelineResponse struct {
	Zoom   models.Zoom     `json:"zoom"`
	Groups []TimelineGroup `json:"groups"`
}

// NotesResponse wraps a note collection.
type NotesResponse struct {
	Notes []models.Note `json:"notes"`
	Total int           `json:"total"`
}
