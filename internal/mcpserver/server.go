// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Jera habit-tracking tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/jera/internal/habitservice"
)

// Server wraps the MCP server with Jera tools.
type Server struct {
	mcp *server.MCPServer
	svc *habitservice.Service
}

// New creates a new MCP server with all Jera tools registered.
func New(svc *habitservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Jera",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_habits",
		mcp.WithDescription("List all tracked habits with their ids, icons, and colors."),
	), s.listHabits)

	s.mcp.AddTool(mcp.NewTool("add_habit",
		mcp.WithDescription("Create a new habit to track. The icon is a symbolic glyph name "+
			"from the host's icon catalog; the color is a hex RGB string like #22c55e."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name of the habit")),
		mcp.WithString("icon", mcp.Required(), mcp.Description("Symbolic icon name (e.g. book, dumbbell)")),
		mcp.WithString("color", mcp.Description("Hex RGB display color (optional)")),
	), s.addHabit)

	s.mcp.AddTool(mcp.NewTool("delete_habit",
		mcp.WithDescription("Delete a habit and every completion entry recorded for it."),
		mcp.WithString("habit_id", mcp.Required(), mcp.Description("Id of the habit to delete")),
	), s.deleteHabit)

	s.mcp.AddTool(mcp.NewTool("toggle_entry",
		mcp.WithDescription("Mark a habit as completed on a day, or unmark it if it is "+
			"already completed. Dates use YYYY-MM-DD."),
		mcp.WithString("habit_id", mcp.Required(), mcp.Description("Id of the habit")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar day in YYYY-MM-DD form")),
	), s.toggleEntry)

	s.mcp.AddTool(mcp.NewTool("day_entries",
		mcp.WithDescription("List which habits were completed on a given day."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar day in YYYY-MM-DD form")),
	), s.dayEntries)

	s.mcp.AddTool(mcp.NewTool("month_summary",
		mcp.WithDescription("Per-habit completion counts for a month."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Four-digit year")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Month number, 1-12")),
	), s.monthSummary)

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

func (s *Server) listHabits(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habits := s.svc.ListHabits(ctx)
	out, _ := json.MarshalIndent(habits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	icon, err := req.RequireString("icon")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	color := req.GetString("color", "")

	h, err := s.svc.CreateHabit(ctx, name, icon, color)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s (%s)", h.Name, h.ID)), nil
}

func (s *Server) deleteHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("habit_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteHabit(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("deleted: " + id), nil
}

func (s *Server) toggleEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("habit_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	marked, err := s.svc.ToggleEntry(ctx, id, date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if marked {
		return mcp.NewToolResultText(fmt.Sprintf("marked %s on %s", id, date)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("unmarked %s on %s", id, date)), nil
}

func (s *Server) dayEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := s.svc.EntriesOn(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no entries on " + date), nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if h, err := s.svc.GetHabit(ctx, e.HabitID); err == nil {
			names = append(names, h.Name)
		} else {
			names = append(names, e.HabitID)
		}
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) monthSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	month, err := req.RequireInt("month")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := s.svc.Month(ctx, year, time.Month(month))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(view.Counts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
