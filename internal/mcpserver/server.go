// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Chrononotes tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ellard/chrononotes/internal/apperr"
	"github.com/ellard/chrononotes/internal/fuzzydate"
	"github.com/ellard/chrononotes/internal/models"
	"github.com/ellard/chrononotes/internal/noterepo"
	"github.com/ellard/chrononotes/internal/timeline"
)

// Server wraps the MCP server with Chrononotes tools.
type Server struct {
	mcp  *server.MCPServer
	repo *noterepo.Repository
}

// New creates a new MCP server with all Chrononotes tools registered.
func New(repo *noterepo.Repository) *Server {
	s := &Server{repo: repo}

	s.mcp = server.NewMCPServer(
		"Chrononotes",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("timeline",
		mcp.WithDescription("Return the chronological timeline of notes in the current project, "+
			"grouped by year or month."),
		mcp.WithString("zoom", mcp.Description("Granularity: years or months (default years)")),
	), s.timeline)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a single note by id, including its date fields and tags."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note in the current project. The note starts with "+
			"an exact date of today; use update_note to set title, body, and date fields."),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Update fields of an existing note. Only the provided fields change. "+
			"dateType is one of exact, approx_range, broad_period; dates are ISO YYYY-MM-DD strings."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("body", mcp.Description("New rich-text body")),
		mcp.WithString("dateType", mcp.Description("exact, approx_range, or broad_period")),
		mcp.WithString("dateStart", mcp.Description("Start date, YYYY-MM-DD")),
		mcp.WithString("dateEnd", mcp.Description("End date for broad_period, YYYY-MM-DD")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("export_notes",
		mcp.WithDescription("Export notes as a Markdown document. Read the chrononotes://export-format "+
			"resource or the get_export_contract tool for the output layout."),
		mcp.WithString("scope", mcp.Description("all (default) or filtered")),
	), s.exportNotes)

	s.mcp.AddTool(mcp.NewTool("get_export_contract",
		mcp.WithDescription("Returns the canonical Markdown export format produced by export_notes."),
	), s.getExportContract)

	s.mcp.AddTool(mcp.NewTool("current_project",
		mcp.WithDescription("Return the currently active project (id, label, path)."),
	), s.currentProject)

	s.mcp.AddTool(mcp.NewTool("switch_project",
		mcp.WithDescription("Switch to the project rooted at the given folder path. "+
			"An empty path switches to the default project."),
		mcp.WithString("path", mcp.Description("Project folder path (empty for default)")),
	), s.switchProject)

	// Resource: export format contract.
	s.mcp.AddResource(
		mcp.NewResource("chrononotes://export-format", "Export Format Contract",
			mcp.WithResourceDescription("Canonical Markdown layout produced by the export tools."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readExportFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) timeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	zoom := s.repo.State().Zoom
	if z, err := req.RequireString("zoom"); err == nil && z != "" {
		if z == string(models.ZoomMonths) {
			zoom = models.ZoomMonths
		} else {
			zoom = models.ZoomYears
		}
	}

	groups := timeline.BuildGroups(s.repo.FilteredNotes(), zoom)
	type entry struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		DateSummary string   `json:"dateSummary"`
		Tags        []string `json:"tags"`
	}
	type group struct {
		Label string  `json:"label"`
		Notes []entry `json:"notes"`
	}
	out := make([]group, len(groups))
	for i, g := range groups {
		og := group{Label: g.Label, Notes: make([]entry, len(g.Notes))}
		for j, n := range g.Notes {
			og.Notes[j] = entry{
				ID:          n.ID,
				Title:       n.Title,
				DateSummary: fuzzydate.Summary(n),
				Tags:        n.Tags,
			}
		}
		out[i] = og
	}
	raw, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(raw)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, ok := s.repo.Note(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	raw, _ := json.MarshalIndent(n, "", "  ")
	return mcp.NewToolResultText(string(raw)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := s.repo.CreateNote()
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", n.ID)), nil
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var patch noterepo.Patch
	if v, err := req.RequireString("title"); err == nil {
		patch.Title = &v
	}
	if v, err := req.RequireString("body"); err == nil {
		patch.Body = &v
	}
	if v, err := req.RequireString("dateType"); err == nil {
		dt := models.DateType(v)
		patch.DateType = &dt
	}
	if v, err := req.RequireString("dateStart"); err == nil {
		patch.DateStart = &v
	}
	if v, err := req.RequireString("dateEnd"); err == nil {
		patch.DateEnd = &v
	}

	n, ok := s.repo.UpdateNote(id, patch)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	raw, _ := json.MarshalIndent(n, "", "  ")
	return mcp.NewToolResultText(string(raw)), nil
}

func (s *Server) exportNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope := noterepo.ScopeAll
	if v, err := req.RequireString("scope"); err == nil && v != "" {
		scope = v
	}
	doc, err := s.repo.ExportMarkdown(scope)
	if err != nil {
		if errors.Is(err, apperr.ErrEmptyExport) {
			return mcp.NewToolResultError("no notes in export scope"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(doc), nil
}

func (s *Server) currentProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := json.MarshalIndent(s.repo.Project(), "", "  ")
	return mcp.NewToolResultText(string(raw)), nil
}

func (s *Server) switchProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := ""
	if v, err := req.RequireString("path"); err == nil {
		path = v
	}
	p := s.repo.SwitchProject(path)
	return mcp.NewToolResultText(fmt.Sprintf("switched to: %s", p.Label)), nil
}

func (s *Server) getExportContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ExportFormatContract), nil
}

func (s *Server) readExportFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "chrononotes://export-format",
			MIMEType: "text/markdown",
			Text:     ExportFormatContract,
		},
	}, nil
}
