package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/render"
	"github.com/ziadkadry99/botdocs/internal/resources"
)

func testContent(t *testing.T) *app.Content {
	t.Helper()
	fsys := fstest.MapFS{
		"catalog.json": {Data: []byte(`{
  "commands": [
    {"name": "ping", "description": "Latency check", "group": "util"},
    {"name": "create-poll", "description": "Start a vote", "group": "community",
     "options": [{"name": "question", "type": "String", "required": true}]},
    {"name": "create-ticket", "description": "Open a ticket", "group": "support"}
  ],
  "listeners": [{"title": "Join", "name": "guildMemberAdd", "description": "Greets newcomers"}],
  "auditModules": [{"title": "Roles", "key": "roles"}],
  "components": [{"title": "Ticket panel", "kind": "button", "customIds": ["ticket:open", "ticket:close"]}]
}`)},
		"groups.yaml": {Data: []byte(`
commands:
  - id: community
    match: [community]
    title: {en: Community, hu: Közösség}
  - id: support
    match: [support]
    title: Support
`)},
		"languages.json": {Data: []byte(`[]`)},
	}
	content, err := app.LoadContent(context.Background(), &resources.FSLoader{FS: fsys}, app.DefaultResourceNames(), time.Second)
	if err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	return content
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(testContent(t), render.Site{BotName: "TestBot"}, "en-GB", nil)
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sb strings.Builder
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return result, sb.String()
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"search_catalog", searchCatalogTool, "search_catalog"},
		{"lookup_item", lookupItemTool, "lookup_item"},
		{"list_groups", listGroupsTool, "list_groups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(testContent(t), render.Site{}, "", nil)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.defaultLocale != "hu-HU" {
		t.Errorf("defaultLocale = %q", srv.defaultLocale)
	}
}

func TestHandleSearchCatalog(t *testing.T) {
	srv := newTestServer(t)

	t.Run("basic search", func(t *testing.T) {
		result, text := call(t, srv.handleSearchCatalog, map[string]any{"query": "Poll"})
		if result.IsError {
			t.Fatalf("unexpected tool error: %s", text)
		}
		if !strings.Contains(text, "id: command/create-poll") || strings.Contains(text, "create-ticket") {
			t.Errorf("results = %s", text)
		}
		if !strings.Contains(text, "group: Community") || !strings.Contains(text, "options: 1") {
			t.Errorf("missing details: %s", text)
		}
	})

	t.Run("localized group label", func(t *testing.T) {
		_, text := call(t, srv.handleSearchCatalog, map[string]any{"query": "közösség", "locale": "hu-HU"})
		if !strings.Contains(text, "command/create-poll") {
			t.Errorf("hu group label did not match: %s", text)
		}
	})

	t.Run("section filter", func(t *testing.T) {
		_, text := call(t, srv.handleSearchCatalog, map[string]any{"query": "e", "section": "listeners"})
		if !strings.Contains(text, "listener/guildMemberAdd") || strings.Contains(text, "command/") {
			t.Errorf("results = %s", text)
		}
	})

	t.Run("limit", func(t *testing.T) {
		_, text := call(t, srv.handleSearchCatalog, map[string]any{"query": "create", "limit": 1})
		if !strings.Contains(text, "Found 2 result(s), showing 1") {
			t.Errorf("results = %s", text)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		result, text := call(t, srv.handleSearchCatalog, map[string]any{"query": "zzz"})
		if result.IsError || !strings.Contains(text, "No catalog items") {
			t.Errorf("no matches = %v %s", result.IsError, text)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		result, _ := call(t, srv.handleSearchCatalog, map[string]any{})
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})

	t.Run("unknown section", func(t *testing.T) {
		result, _ := call(t, srv.handleSearchCatalog, map[string]any{"query": "x", "section": "emoji"})
		if !result.IsError {
			t.Error("expected error for unknown section")
		}
	})
}

func TestHandleLookupItem(t *testing.T) {
	srv := newTestServer(t)

	result, text := call(t, srv.handleLookupItem, map[string]any{"id": "command/create-poll"})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var got struct {
		Kind    render.Kind         `json:"kind"`
		ID      string              `json:"id"`
		Command *render.CommandView `json:"command"`
	}
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, text)
	}
	if got.Kind != render.KindCommand || got.ID != "command/create-poll" || got.Command == nil {
		t.Fatalf("lookup = %+v", got)
	}
	if got.Command.CopyText != "/create-poll" || len(got.Command.Parameters.Options) != 1 {
		t.Errorf("command view = %+v", got.Command)
	}

	result, text = call(t, srv.handleLookupItem, map[string]any{"id": "legal/terms"})
	if result.IsError || !strings.Contains(text, `"legal"`) {
		t.Errorf("legal lookup = %s", text)
	}

	result, _ = call(t, srv.handleLookupItem, map[string]any{"id": "command/nope"})
	if !result.IsError {
		t.Error("expected error for unknown id")
	}
}

func TestHandleListGroups(t *testing.T) {
	srv := newTestServer(t)

	result, text := call(t, srv.handleListGroups, map[string]any{"section": "commands"})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	community := strings.Index(text, "Community [community]: 1 item(s)")
	support := strings.Index(text, "Support [support]: 1 item(s)")
	util := strings.Index(text, "util [util]: 1 item(s) (unconfigured)")
	if community < 0 || support < 0 || util < 0 {
		t.Fatalf("groups = %s", text)
	}
	if !(community < support && support < util) {
		t.Errorf("groups out of order: %s", text)
	}

	result, _ = call(t, srv.handleListGroups, map[string]any{"section": "widgets"})
	if !result.IsError {
		t.Error("expected error for unknown section")
	}
}

func TestHandleListGroupsAllSections(t *testing.T) {
	srv := newTestServer(t)

	result, text := call(t, srv.handleListGroups, map[string]any{})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var last int
	for _, want := range []string{"in commands:", "in listeners:", "in audits:", "in components:", "button [button]: 1 item(s) (unconfigured)"} {
		i := strings.Index(text, want)
		if i < last {
			t.Errorf("%q missing or out of order in:\n%s", want, text)
			continue
		}
		last = i
	}
}

func TestHandleLookupComponent(t *testing.T) {
	srv := newTestServer(t)
	result, text := call(t, srv.handleLookupItem, map[string]any{"id": "component/Ticket panel"})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var out struct {
		Kind      render.Kind `json:"kind"`
		Component struct {
			TypeLabel string   `json:"typeLabel"`
			CustomIDs []string `json:"customIds"`
		} `json:"component"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Kind != render.KindComponent || len(out.Component.CustomIDs) != 2 {
		t.Errorf("lookup = %+v", out)
	}
}
