package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/noterepo"
	"github.com/ellard/chrononotes/internal/testutil"
)

func testServer(t *testing.T) (*Server, *noterepo.Repository) {
	t.Helper()
	repo := testutil.TestRepository(t)
	srv := New(repo)
	return srv, repo
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "timeline":
		result, err = srv.timeline(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "update_note":
		result, err = srv.updateNote(ctx, req)
	case "export_notes":
		result, err = srv.exportNotes(ctx, req)
	case "current_project":
		result, err = srv.currentProject(ctx, req)
	case "switch_project":
		result, err = srv.switchProject(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestTimelineTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "timeline", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, `"label": "2022"`) {
		t.Errorf("timeline missing year bucket: %s", text)
	}
	if !strings.Contains(text, "Period: 2022-09-01 – 2022-12-31") {
		t.Errorf("timeline missing date summary: %s", text)
	}
}

func TestCreateAndReadNote(t *testing.T) {
	srv, repo := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: ") {
		t.Fatalf("create result = %q", text)
	}
	id := strings.TrimPrefix(text, "created: ")

	r = callTool(t, srv, "read_note", map[string]interface{}{"id": id})
	var n models.Note
	if err := json.Unmarshal([]byte(resultText(r)), &n); err != nil {
		t.Fatalf("read result not JSON: %v", err)
	}
	if n.ID != id || n.DateType != models.DateTypeExact {
		t.Errorf("note = %+v", n)
	}

	if _, ok := repo.Note(id); !ok {
		t.Error("created note missing from repository")
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestUpdateNoteTool(t *testing.T) {
	srv, repo := testServer(t)
	n := repo.CreateNote()

	r := callTool(t, srv, "update_note", map[string]interface{}{
		"id":        n.ID,
		"title":     "Renamed",
		"dateType":  "broad_period",
		"dateStart": "2021-01-01",
		"dateEnd":   "2021-06-30",
	})
	if r.IsError {
		t.Fatalf("update failed: %s", resultText(r))
	}
	var got models.Note
	_ = json.Unmarshal([]byte(resultText(r)), &got)
	if got.Title != "Renamed" || got.DateType != models.DateTypeBroadPeriod || got.DateEnd != "2021-06-30" {
		t.Errorf("note = %+v", got)
	}
}

func TestExportNotesTool(t *testing.T) {
	srv, repo := testServer(t)

	r := callTool(t, srv, "export_notes", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "# First note") {
		t.Errorf("export = %q", text)
	}

	repo.SetTagFilter("zzz-no-match")
	r = callTool(t, srv, "export_notes", map[string]interface{}{"scope": "filtered"})
	if !r.IsError {
		t.Error("expected error for empty export scope")
	}
}

func TestProjectTools(t *testing.T) {
	srv, _ := testServer(t)
	dir := t.TempDir()

	r := callTool(t, srv, "switch_project", map[string]interface{}{"path": dir})
	if r.IsError {
		t.Fatalf("switch failed: %s", resultText(r))
	}

	r = callTool(t, srv, "current_project", map[string]interface{}{})
	var p models.Project
	_ = json.Unmarshal([]byte(resultText(r)), &p)
	if p.ID != "path:"+dir {
		t.Errorf("project = %+v", p)
	}
}
