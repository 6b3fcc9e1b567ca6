package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/jera/internal/habitservice"
	"github.com/starford/jera/internal/testutil"
)

func testServer(t *testing.T) (*Server, *habitservice.Service) {
	t.Helper()

	svc := habitservice.NewService(testutil.TestStore(t), nil)
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we exercise the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_habits":
		result, err = srv.listHabits(ctx, req)
	case "add_habit":
		result, err = srv.addHabit(ctx, req)
	case "delete_habit":
		result, err = srv.deleteHabit(ctx, req)
	case "toggle_entry":
		result, err = srv.toggleEntry(ctx, req)
	case "day_entries":
		result, err = srv.dayEntries(ctx, req)
	case "month_summary":
		result, err = srv.monthSummary(ctx, req)
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

func TestAddAndListHabits(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_habit", map[string]interface{}{
		"name":  "Read",
		"icon":  "book",
		"color": "#22c55e",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: Read") {
		t.Errorf("add result = %q", text)
	}

	r = callTool(t, srv, "list_habits", map[string]interface{}{})
	text = resultText(r)
	if !strings.Contains(text, `"name": "Read"`) {
		t.Errorf("list result = %q", text)
	}
}

func TestAddHabit_ValidationError(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "add_habit", map[string]interface{}{
		"name": "",
		"icon": "book",
	})
	if !r.IsError {
		t.Error("expected error for empty name")
	}
}

func TestToggleEntryAndDayEntries(t *testing.T) {
	srv, svc := testServer(t)
	h, err := svc.CreateHabit(context.Background(), "Read", "book", "#fff")
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "toggle_entry", map[string]interface{}{
		"habit_id": h.ID,
		"date":     "2024-03-05",
	})
	if text := resultText(r); !strings.HasPrefix(text, "marked") {
		t.Errorf("first toggle = %q", text)
	}

	r = callTool(t, srv, "day_entries", map[string]interface{}{"date": "2024-03-05"})
	if text := resultText(r); text != "Read" {
		t.Errorf("day entries = %q", text)
	}

	r = callTool(t, srv, "toggle_entry", map[string]interface{}{
		"habit_id": h.ID,
		"date":     "2024-03-05",
	})
	if text := resultText(r); !strings.HasPrefix(text, "unmarked") {
		t.Errorf("second toggle = %q", text)
	}

	r = callTool(t, srv, "day_entries", map[string]interface{}{"date": "2024-03-05"})
	if text := resultText(r); text != "no entries on 2024-03-05" {
		t.Errorf("day entries after unmark = %q", text)
	}
}

func TestDeleteHabit(t *testing.T) {
	srv, svc := testServer(t)
	h, err := svc.CreateHabit(context.Background(), "Read", "book", "#fff")
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "delete_habit", map[string]interface{}{"habit_id": h.ID})
	if text := resultText(r); text != "deleted: "+h.ID {
		t.Errorf("delete result = %q", text)
	}

	r = callTool(t, srv, "delete_habit", map[string]interface{}{"habit_id": h.ID})
	if !r.IsError {
		t.Error("second delete should be an error")
	}
}

func TestMonthSummary(t *testing.T) {
	srv, svc := testServer(t)
	ctx := context.Background()
	h, _ := svc.CreateHabit(ctx, "Read", "book", "#fff")
	_, _ = svc.ToggleEntry(ctx, h.ID, "2024-01-01")
	_, _ = svc.ToggleEntry(ctx, h.ID, "2024-01-31")
	_, _ = svc.ToggleEntry(ctx, h.ID, "2024-02-01")

	r := callTool(t, srv, "month_summary", map[string]interface{}{
		"year":  2024,
		"month": 1,
	})
	text := resultText(r)
	if !strings.Contains(text, `"count": 2`) {
		t.Errorf("summary = %q, want count 2", text)
	}
}
