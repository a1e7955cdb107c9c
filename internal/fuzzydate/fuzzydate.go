// Package fuzzydate implements ordering and display rules for the three
// date-precision variants a note can carry.
package fuzzydate

import (
	"fmt"
	"sort"

	"github.com/ellard/chrononotes/internal/models"
)

// Summary renders a note's date as a human-readable line. The
// type-specific format is tried first; a note whose declared type is
// missing a required field falls back to the generic "Date:" form, and
// a note without a start date is "No date".
func Summary(n models.Note) string {
	switch {
	case n.DateType == models.DateTypeExact && n.DateStart != "":
		return "Exact: " + n.DateStart
	case n.DateType == models.DateTypeApproxRange && n.DateStart != "" && n.RangeMarginDays != nil:
		return fmt.Sprintf("Around: %s (±%d days)", n.DateStart, *n.RangeMarginDays)
	case n.DateType == models.DateTypeBroadPeriod && n.DateStart != "" && n.DateEnd != "":
		return fmt.Sprintf("Period: %s – %s", n.DateStart, n.DateEnd)
	case n.DateStart != "":
		return "Date: " + n.DateStart
	}
	return "No date"
}

// SortByDate returns a new slice ordered chronologically: dated notes
// first, compared lexically on DateStart (date-correct for ISO-8601
// strings of equal length), then undated notes in their original
// relative order. The input is not modified.
func SortByDate(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.DateStart != "" && b.DateStart != "":
			return a.DateStart < b.DateStart
		case a.DateStart != "":
			return true
		default:
			return false
		}
	})
	return out
}
