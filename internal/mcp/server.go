// Package mcp exposes the loaded catalog to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/locale"
	"github.com/ziadkadry99/botdocs/internal/observability"
	"github.com/ziadkadry99/botdocs/internal/render"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes catalog lookup tools.
type Server struct {
	content       *app.Content
	site          render.Site
	defaultLocale string
	logger        *zap.Logger
	mcp           *server.MCPServer
}

// NewServer creates a new MCP server over loaded content. Tools render in
// defaultLocale unless a call names another locale.
func NewServer(content *app.Content, site render.Site, defaultLocale string, logger *zap.Logger) *Server {
	if defaultLocale == "" {
		defaultLocale = locale.DefaultLocale
	}
	s := &Server{
		content:       content,
		site:          site,
		defaultLocale: defaultLocale,
		logger:        observability.OrNop(logger),
	}

	s.mcp = server.NewMCPServer(
		"botdocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchCatalogTool, s.handleSearchCatalog)
	s.mcp.AddTool(lookupItemTool, s.handleLookupItem)
	s.mcp.AddTool(listGroupsTool, s.handleListGroups)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) env(loc string) render.Env {
	if loc == "" {
		loc = s.defaultLocale
	}
	return render.Env{
		Catalog:      s.content.Catalog,
		Groups:       s.content.Groups,
		Languages:    s.content.Languages,
		ListenerDocs: s.content.ListenerDocs,
		Site:         s.site,
		Locale:       locale.New(loc),
	}
}
