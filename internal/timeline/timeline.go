// Package timeline partitions a note collection into chronological
// display buckets at year or month granularity.
package timeline

import (
	"github.com/ellard/chrononotes/internal/fuzzydate"
	"github.com/ellard/chrononotes/internal/models"
)

// UndatedLabel is the bucket label for notes without a start date.
const UndatedLabel = "No date"

// Group is one display bucket: a label and its notes in chronological order.
type Group struct {
	Label string        `json:"label"`
	Notes []models.Note `json:"notes"`
}

// BuildGroups sorts notes chronologically and buckets them by the given
// granularity. Buckets are emitted in the order their key is first seen
// in the sorted sequence, so the undated bucket (if any) comes last.
// No bucket is ever empty.
func BuildGroups(notes []models.Note, zoom models.Zoom) []Group {
	sorted := fuzzydate.SortByDate(notes)

	byKey := make(map[string]int)
	var groups []Group
	for _, n := range sorted {
		key := bucketKey(n, zoom)
		idx, ok := byKey[key]
		if !ok {
			idx = len(groups)
			byKey[key] = idx
			groups = append(groups, Group{Label: key})
		}
		groups[idx].Notes = append(groups[idx].Notes, n)
	}
	return groups
}

// bucketKey derives the bucket label by fixed-position substring
// extraction of the ISO date string, not calendar parsing.
func bucketKey(n models.Note, zoom models.Zoom) string {
	if n.DateStart == "" {
		return UndatedLabel
	}
	year := slice(n.DateStart, 0, 4)
	if zoom != models.ZoomMonths {
		return year
	}
	return year + "-" + slice(n.DateStart, 5, 7)
}

func slice(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
