package noterepo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ellard/chrononotes/internal/apperr"
	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/store"
)

func tempStore(t *testing.T) *store.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "chrononotes-repo-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
}

func TestFilterByTag_Substring(t *testing.T) {
	notes := []models.Note{
		{ID: "1", Tags: []string{"Travel"}},
		{ID: "2", Tags: []string{"research-draft"}},
	}
	got := FilterByTag(notes, "rave")
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("got %v, want only note 1", got)
	}
}

func TestFilterByTag_EmptyQueryReturnsAll(t *testing.T) {
	notes := []models.Note{
		{ID: "1", Tags: []string{"a"}},
		{ID: "2"},
	}
	for _, q := range []string{"", "   ", "\t"} {
		got := FilterByTag(notes, q)
		if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
			t.Errorf("query %q: got %v", q, got)
		}
	}
}

func TestFilterByTag_CaseInsensitive(t *testing.T) {
	notes := []models.Note{{ID: "1", Tags: []string{"Travel"}}}
	if got := FilterByTag(notes, "TRAVEL"); len(got) != 1 {
		t.Errorf("got %v", got)
	}
}

func TestNew_LoadsStarterNotesForFreshProject(t *testing.T) {
	r := New(tempStore(t))
	if got := len(r.Notes()); got != 3 {
		t.Errorf("len(notes) = %d, want 3 starter notes", got)
	}
	if r.Project().ID != "default" {
		t.Errorf("project = %+v", r.Project())
	}
}

func TestCreateNote_Defaults(t *testing.T) {
	r := New(tempStore(t), WithClock(fixedClock()))
	n := r.CreateNote()

	if n.Title != "" || n.Body != "" {
		t.Errorf("new note not empty: %+v", n)
	}
	if n.DateType != models.DateTypeExact {
		t.Errorf("dateType = %q", n.DateType)
	}
	if n.DateStart != "2026-08-29" {
		t.Errorf("dateStart = %q", n.DateStart)
	}
	if len(n.Tags) != 0 || len(n.Attachments) != 0 {
		t.Errorf("tags/attachments not empty: %+v", n)
	}
	if st := r.State(); st.SelectedID != n.ID {
		t.Errorf("new note not selected: %+v", st)
	}
}

func TestUpdateNote_PartialMerge(t *testing.T) {
	r := New(tempStore(t), WithClock(fixedClock()))
	n := r.CreateNote()

	title := "Updated"
	start := "2020-05-05"
	got, ok := r.UpdateNote(n.ID, Patch{Title: &title, DateStart: &start})
	if !ok {
		t.Fatal("update reported no match")
	}
	if got.Title != "Updated" || got.DateStart != "2020-05-05" {
		t.Errorf("note = %+v", got)
	}
	// Untouched fields survive.
	if got.DateType != models.DateTypeExact {
		t.Errorf("dateType = %q", got.DateType)
	}
}

func TestUpdateNote_UnknownIDIsNoOp(t *testing.T) {
	r := New(tempStore(t))
	title := "x"
	if _, ok := r.UpdateNote("missing", Patch{Title: &title}); ok {
		t.Error("expected no match")
	}
}

func TestUpdateNote_InvariantsNotEnforced(t *testing.T) {
	r := New(tempStore(t), WithClock(fixedClock()))
	n := r.CreateNote()

	// broad_period with start after end is accepted (logged only).
	dt := models.DateTypeBroadPeriod
	start, end := "2024-12-31", "2024-01-01"
	got, ok := r.UpdateNote(n.ID, Patch{DateType: &dt, DateStart: &start, DateEnd: &end})
	if !ok {
		t.Fatal("update rejected")
	}
	if got.DateStart != "2024-12-31" || got.DateEnd != "2024-01-01" {
		t.Errorf("note = %+v", got)
	}
}

func TestMutationsPersistWriteThrough(t *testing.T) {
	s := tempStore(t)
	r := New(s, WithClock(fixedClock()))
	n := r.CreateNote()
	r.SetTagFilter("travel")
	r.SetZoom(models.ZoomMonths)

	// A second repository over the same store sees everything.
	r2 := New(s)
	if _, ok := r2.Note(n.ID); !ok {
		t.Error("created note not persisted")
	}
	st := r2.State()
	if st.TagFilter != "travel" || st.Zoom != models.ZoomMonths || st.SelectedID != n.ID {
		t.Errorf("state = %+v", st)
	}
}

func TestSetZoom_InvalidMapsToYears(t *testing.T) {
	r := New(tempStore(t))
	r.SetZoom(models.Zoom("weeks"))
	if st := r.State(); st.Zoom != models.ZoomYears {
		t.Errorf("zoom = %q", st.Zoom)
	}
}

func TestSwitchProject_IsolatesState(t *testing.T) {
	s := tempStore(t)
	r := New(s, WithClock(fixedClock()))

	created := r.CreateNote()
	r.SwitchProject("/tmp/projects/alpha")

	if _, ok := r.Note(created.ID); ok {
		t.Error("note from default project visible in alpha")
	}
	if got := len(r.Notes()); got != 3 {
		t.Errorf("fresh project should see starter notes, got %d", got)
	}

	// Switching back restores the default project's notes.
	r.SwitchProject("")
	if _, ok := r.Note(created.ID); !ok {
		t.Error("note lost after switching back")
	}
}

func TestCreateProject_MakesFolderAndStartsEmpty(t *testing.T) {
	r := New(tempStore(t))
	parent := t.TempDir()

	p, err := r.CreateProject(parent, "my journal")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.Label != "my journal" {
		t.Errorf("label = %q", p.Label)
	}
	if _, err := os.Stat(filepath.Join(parent, "my journal")); err != nil {
		t.Errorf("project folder missing: %v", err)
	}
	if got := len(r.Notes()); got != 0 {
		t.Errorf("new project should start empty, got %d notes", got)
	}
}

func TestCreateProject_Validation(t *testing.T) {
	r := New(tempStore(t))
	if _, err := r.CreateProject(t.TempDir(), "   "); err == nil {
		t.Error("blank name accepted")
	}
	if _, err := r.CreateProject("", "name"); err == nil {
		t.Error("missing parent accepted")
	}
}

func TestAddAttachment(t *testing.T) {
	r := New(tempStore(t), WithClock(fixedClock()))
	n := r.CreateNote()

	att, ok := r.AddAttachment(n.ID, "scan.pdf", "/data/scan.pdf")
	if !ok {
		t.Fatal("attachment rejected")
	}
	if att.ID == "" || att.FileName != "scan.pdf" {
		t.Errorf("attachment = %+v", att)
	}
	got, _ := r.Note(n.ID)
	if len(got.Attachments) != 1 {
		t.Errorf("attachments = %v", got.Attachments)
	}

	if _, ok := r.AddAttachment("missing", "a", "b"); ok {
		t.Error("attachment added to unknown note")
	}
}

func TestExportMarkdown_EmptyScopeRejected(t *testing.T) {
	s := tempStore(t)
	r := New(s)
	r.SetTagFilter("no-note-has-this-tag")

	if _, err := r.ExportMarkdown(ScopeFiltered); !errors.Is(err, apperr.ErrEmptyExport) {
		t.Errorf("err = %v, want ErrEmptyExport", err)
	}

	// All scope still exports.
	doc, err := r.ExportMarkdown(ScopeAll)
	if err != nil {
		t.Fatalf("export all: %v", err)
	}
	if doc == "" {
		t.Error("empty document")
	}
}

func TestExportMarkdown_IgnoresFilterForAllScope(t *testing.T) {
	r := New(tempStore(t), WithClock(fixedClock()))
	tags := []string{"travel"}
	notes := r.Notes()
	if _, ok := r.UpdateNote(notes[0].ID, Patch{Tags: &tags}); !ok {
		t.Fatal("update failed")
	}
	r.SetTagFilter("travel")

	all, err := r.ExportMarkdown(ScopeAll)
	if err != nil {
		t.Fatal(err)
	}
	filtered, err := r.ExportMarkdown(ScopeFiltered)
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) >= len(all) {
		t.Error("filtered export should be a strict subset here")
	}
}
