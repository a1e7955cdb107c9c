package markdown

import (
	"strings"
	"testing"

	"github.com/ellard/chrononotes/internal/models"
)

func TestBuildExport_BlockLayout(t *testing.T) {
	notes := []models.Note{
		{
			ID:        "1",
			Title:     "  Trip notes  ",
			Body:      "<p>Pack <strong>light</strong>.</p>",
			DateType:  models.DateTypeExact,
			DateStart: "2024-02-10",
			Tags:      []string{"travel", "packing"},
		},
	}
	got := BuildExport(notes)
	want := "# Trip notes\nDate: Exact: 2024-02-10\nTags: travel, packing\n\nPack **light**."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildExport_UntitledAndNoTags(t *testing.T) {
	got := BuildExport([]models.Note{{ID: "1", Title: "   "}})
	if !strings.HasPrefix(got, "# Untitled note\n") {
		t.Errorf("missing untitled fallback: %q", got)
	}
	if !strings.Contains(got, "Tags: No tags") {
		t.Errorf("missing no-tags fallback: %q", got)
	}
	if !strings.Contains(got, "Date: No date") {
		t.Errorf("missing no-date line: %q", got)
	}
}

func TestBuildExport_ChronologicalOrderAndSeparator(t *testing.T) {
	notes := []models.Note{
		{ID: "late", Title: "Late", DateStart: "2024-01-01", DateType: models.DateTypeExact},
		{ID: "early", Title: "Early", DateStart: "2020-01-01", DateType: models.DateTypeExact},
	}
	got := BuildExport(notes)
	blocks := strings.Split(got, "\n\n---\n\n")
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if !strings.HasPrefix(blocks[0], "# Early") || !strings.HasPrefix(blocks[1], "# Late") {
		t.Errorf("blocks out of order: %q", got)
	}
}

func TestPlainTextAndPreview(t *testing.T) {
	if got := PlainText("<p>Hello <strong>world</strong></p>"); got != "Hello world" {
		t.Errorf("PlainText = %q", got)
	}
	if got := Preview("<p>abcdef</p>", 10); got != "abcdef" {
		t.Errorf("Preview short = %q", got)
	}
	got := Preview("<p>alpha beta gamma</p>", 10)
	if got != "alpha beta…" {
		t.Errorf("Preview truncated = %q", got)
	}
}

func TestRendererHTML(t *testing.T) {
	r := NewRenderer()
	got := r.HTML("# Title\n\nbody")
	if !strings.Contains(got, "<h1>") || !strings.Contains(got, "body") {
		t.Errorf("rendered html = %q", got)
	}
}
