// Package models defines the domain types for Chrononotes.
package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateType is the precision of a note's temporal annotation.
type DateType string

// Date precision variants.
const (
	DateTypeExact       DateType = "exact"
	DateTypeApproxRange DateType = "approx_range"
	DateTypeBroadPeriod DateType = "broad_period"
)

// Zoom is the timeline bucket granularity.
type Zoom string

// Zoom granularities.
const (
	ZoomYears  Zoom = "years"
	ZoomMonths Zoom = "months"
)

// Note is a user note annotated with a fuzzy date. The JSON shape is the
// persisted collection format, shared with earlier versions of the app.
//
// Date fields are soft invariants: an exact note should carry DateStart,
// an approx_range note DateStart plus a non-negative margin, and a
// broad_period note DateStart <= DateEnd (lexically). None of this is
// structurally enforced; a note without DateStart is valid and undated.
type Note struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Body            string       `json:"body"`
	DateType        DateType     `json:"dateType"`
	DateStart       string       `json:"dateStart,omitempty"`
	DateEnd         string       `json:"dateEnd,omitempty"`
	RangeMarginDays *int         `json:"rangeMarginDays,omitempty"`
	Tags            []string     `json:"tags"`
	Attachments     []Attachment `json:"attachments"`
}

// Attachment is an opaque external file reference. The core never reads
// the file; FileName is display-only.
type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

// Project identifies an isolated persisted-state namespace, typically
// backed by a filesystem folder.
type Project struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path,omitempty"`
}

// DefaultProject is the sentinel project used when no project has been chosen.
func DefaultProject() Project {
	return Project{ID: "default", Label: "Default"}
}

// ValidateDates checks the soft date invariants for the note's declared
// type. Violations are reported, never enforced: callers log and proceed.
func (n Note) ValidateDates() error {
	switch n.DateType {
	case DateTypeExact:
		return validation.ValidateStruct(&n,
			validation.Field(&n.DateStart, validation.Required),
		)
	case DateTypeApproxRange:
		if err := validation.ValidateStruct(&n,
			validation.Field(&n.DateStart, validation.Required),
			validation.Field(&n.RangeMarginDays, validation.NotNil),
		); err != nil {
			return err
		}
		if *n.RangeMarginDays < 0 {
			return fmt.Errorf("rangeMarginDays: must be non-negative, got %d", *n.RangeMarginDays)
		}
		return nil
	case DateTypeBroadPeriod:
		if err := validation.ValidateStruct(&n,
			validation.Field(&n.DateStart, validation.Required),
			validation.Field(&n.DateEnd, validation.Required),
		); err != nil {
			return err
		}
		if n.DateStart > n.DateEnd {
			return fmt.Errorf("dateStart: %s is after dateEnd %s", n.DateStart, n.DateEnd)
		}
		return nil
	}
	return fmt.Errorf("dateType: unknown value %q", n.DateType)
}

// Normalize replaces nil tag and attachment slices with empty ones so
// collections saved by older app versions round-trip cleanly.
func (n *Note) Normalize() {
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.Attachments == nil {
		n.Attachments = []Attachment{}
	}
}
