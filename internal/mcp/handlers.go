package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/grouping"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/render"
	"github.com/ziadkadry99/botdocs/internal/search"
)

const defaultSearchLimit = 20

// searchHit is one search_catalog result.
type searchHit struct {
	item  catalog.Item
	group string
}

// handleSearchCatalog runs the navigation search predicate over the catalog.
func (s *Server) handleSearchCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	query = search.Normalize(query)
	if query == "" {
		return mcp.NewToolResultError("query must not be blank"), nil
	}

	limit := request.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	sections := catalog.Sections
	if name := request.GetString("section", ""); name != "" {
		sec, ok := parseSection(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown section %q", name)), nil
		}
		sections = []catalog.Section{sec}
	}

	env := s.env(request.GetString("locale", ""))
	var hits []searchHit
	total := 0
	for _, sec := range sections {
		defs := env.Groups[sec]
		for _, it := range s.content.Catalog.Section(sec) {
			label := grouping.Label(grouping.Resolve(defs, it), env.Locale)
			if !search.Matches(it, label, query) {
				continue
			}
			total++
			if len(hits) < limit {
				hits = append(hits, searchHit{item: it, group: label})
			}
		}
	}
	s.logger.Debug("mcp search", zap.String("query", query), zap.Int("matches", total))

	if total == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No catalog items match %q.", query)), nil
	}
	return mcp.NewToolResultText(formatSearchResults(hits, total)), nil
}

// handleLookupItem renders the view of one item or legal page.
func (s *Server) handleLookupItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	sel := nav.Resolve(s.content.Catalog, nav.DecodeFragment(id))
	if sel.View == nav.ViewHome {
		return mcp.NewToolResultError(fmt.Sprintf("no catalog item with id %q; use search_catalog to find ids", id)), nil
	}

	vm := render.Render(sel, s.env(request.GetString("locale", "")))
	out := struct {
		Kind      render.Kind           `json:"kind"`
		Title     string                `json:"title"`
		ID        string                `json:"id"`
		Fragment  string                `json:"fragment"`
		Command   *render.CommandView   `json:"command,omitempty"`
		Listener  *render.ListenerView  `json:"listener,omitempty"`
		Audit     *render.AuditView     `json:"audit,omitempty"`
		Component *render.ComponentView `json:"component,omitempty"`
		Legal     *render.LegalView     `json:"legal,omitempty"`
	}{vm.Kind, vm.Title, vm.ActiveID, vm.Fragment, vm.Command, vm.Listener, vm.Audit, vm.Component, vm.Legal}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding view: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleListGroups lists the buckets of one section, or of every section
// when none is named, in navigation order.
func (s *Server) handleListGroups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sections := catalog.Sections
	if name := request.GetString("section", ""); name != "" {
		sec, ok := parseSection(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown section %q", name)), nil
		}
		sections = []catalog.Section{sec}
	}

	env := s.env(request.GetString("locale", ""))
	var sb strings.Builder
	for i, sec := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		buckets := grouping.GroupItems(env.Groups[sec], s.content.Catalog.Section(sec), env.Locale)
		if len(buckets) == 0 {
			fmt.Fprintf(&sb, "The %s section is empty.\n", sec)
			continue
		}
		fmt.Fprintf(&sb, "%d group(s) in %s:\n", len(buckets), sec)
		for _, b := range buckets {
			fmt.Fprintf(&sb, "- %s [%s]: %d item(s)", grouping.Label(b.Definition, env.Locale), b.Definition.ID, len(b.Items))
			if b.Definition.Synthesized {
				sb.WriteString(" (unconfigured)")
			}
			sb.WriteString("\n")
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func parseSection(name string) (catalog.Section, bool) {
	for _, sec := range catalog.Sections {
		if string(sec) == strings.ToLower(strings.TrimSpace(name)) {
			return sec, true
		}
	}
	return "", false
}

// formatSearchResults converts search hits into a text format suited to
// agent consumption.
func formatSearchResults(hits []searchHit, total int) string {
	var sb strings.Builder
	if total > len(hits) {
		fmt.Fprintf(&sb, "Found %d result(s), showing %d:\n", total, len(hits))
	} else {
		fmt.Fprintf(&sb, "Found %d result(s):\n", total)
	}

	for _, h := range hits {
		fmt.Fprintf(&sb, "\n- %s\n", h.item.DisplayName())
		fmt.Fprintf(&sb, "  id: %s\n", h.item.ID)
		fmt.Fprintf(&sb, "  kind: %s\n", h.item.Kind)
		if h.group != "" {
			fmt.Fprintf(&sb, "  group: %s\n", h.group)
		}
		if desc := h.item.Description(); desc != "" {
			fmt.Fprintf(&sb, "  description: %s\n", desc)
		}
		if h.item.Command != nil {
			if n := h.item.Command.OptionCount(); n > 0 {
				fmt.Fprintf(&sb, "  options: %d\n", n)
			}
		}
	}
	return sb.String()
}
