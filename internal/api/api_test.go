package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/noterepo"
	"github.com/ellard/chrononotes/internal/testutil"
)

// testEnv sets up a temp store, repository, and router for testing.
func testEnv(t *testing.T, authToken string) (*noterepo.Repository, http.Handler) {
	t.Helper()
	repo := testutil.TestRepository(t)
	router := NewRouter(repo, authToken != "", authToken, nil)
	return repo, router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTimeline_GroupsAndPreview(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/timeline", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp TimelineResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Zoom != models.ZoomYears {
		t.Errorf("zoom = %q", resp.Zoom)
	}
	// Starter notes: 2022, 2023, 2024.
	if len(resp.Groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(resp.Groups))
	}
	if resp.Groups[0].Label != "2022" {
		t.Errorf("first label = %q", resp.Groups[0].Label)
	}
	first := resp.Groups[0].Notes[0]
	if first.DateSummary == "" || first.Preview == "" {
		t.Errorf("note missing derived fields: %+v", first)
	}
}

func TestTimeline_ZoomOverride(t *testing.T) {
	_, router := testEnv(t, "")
	w := doJSON(t, router, http.MethodGet, "/timeline?zoom=months", nil)
	var resp TimelineResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Zoom != models.ZoomMonths {
		t.Errorf("zoom = %q", resp.Zoom)
	}
	if resp.Groups[0].Label != "2022-09" {
		t.Errorf("first label = %q", resp.Groups[0].Label)
	}
}

func TestCreateAndUpdateNote(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/notes", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var note models.Note
	_ = json.Unmarshal(w.Body.Bytes(), &note)
	if note.ID == "" || note.DateType != models.DateTypeExact {
		t.Fatalf("note = %+v", note)
	}

	w = doJSON(t, router, http.MethodPatch, "/notes/"+note.ID, map[string]any{
		"title": "Renamed",
		"tags":  []string{"alpha"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	var updated models.Note
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Title != "Renamed" || len(updated.Tags) != 1 {
		t.Errorf("updated = %+v", updated)
	}
	// Fields not in the patch survive.
	if updated.DateStart != note.DateStart {
		t.Errorf("dateStart = %q, want %q", updated.DateStart, note.DateStart)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	_, router := testEnv(t, "")
	w := doJSON(t, router, http.MethodPatch, "/notes/nope", map[string]any{"title": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestAddAttachment(t *testing.T) {
	repo, router := testEnv(t, "")
	n := repo.CreateNote()

	w := doJSON(t, router, http.MethodPost, "/notes/"+n.ID+"/attachments", map[string]string{
		"fileName": "scan.pdf",
		"filePath": "/data/scan.pdf",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/notes/"+n.ID+"/attachments", map[string]string{"fileName": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing filePath accepted: %d", w.Code)
	}
}

func TestStateEndpoints(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPut, "/state/filter", map[string]string{"query": "travel"})
	if w.Code != http.StatusOK {
		t.Fatalf("filter status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPut, "/state/zoom", map[string]string{"zoom": "months"})
	if w.Code != http.StatusOK {
		t.Fatalf("zoom status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/state", nil)
	var st noterepo.ViewState
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if st.TagFilter != "travel" || st.Zoom != models.ZoomMonths {
		t.Errorf("state = %+v", st)
	}
}

func TestProjectSwitch(t *testing.T) {
	_, router := testEnv(t, "")
	dir := t.TempDir()

	w := doJSON(t, router, http.MethodPut, "/project", map[string]string{"path": dir})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var p models.Project
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.ID != "path:"+dir {
		t.Errorf("project = %+v", p)
	}
}

func TestCreateProject_BadRequest(t *testing.T) {
	_, router := testEnv(t, "")
	w := doJSON(t, router, http.MethodPost, "/projects", map[string]string{"parent": "", "name": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestGetExport_MarkdownAndHTML(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "# First note") || !strings.Contains(body, "\n\n---\n\n") {
		t.Errorf("markdown export = %q", body)
	}

	w = doJSON(t, router, http.MethodGet, "/export?format=html", nil)
	if !strings.Contains(w.Body.String(), "<h1>") {
		t.Errorf("html export = %q", w.Body.String())
	}
}

func TestExport_EmptyScopeRejectedBeforeWrite(t *testing.T) {
	_, router := testEnv(t, "")
	target := filepath.Join(t.TempDir(), "out.md")

	// Filter matches nothing, so the filtered scope is empty.
	doJSON(t, router, http.MethodPut, "/state/filter", map[string]string{"query": "zzz-no-match"})
	w := doJSON(t, router, http.MethodPost, "/export", map[string]string{
		"scope": "filtered",
		"path":  target,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("export file was written despite empty scope")
	}
}

func TestExport_WritesFile(t *testing.T) {
	_, router := testEnv(t, "")
	target := filepath.Join(t.TempDir(), "out.md")

	w := doJSON(t, router, http.MethodPost, "/export", map[string]string{
		"scope": "all",
		"path":  target,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if !strings.Contains(string(data), "Date: ") {
		t.Errorf("export content = %q", data)
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, router := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d", w.Code)
	}
}
