package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchCatalogTool defines the search_catalog MCP tool.
var searchCatalogTool = mcp.NewTool("search_catalog",
	mcp.WithDescription("Search the bot's commands, event listeners, audit modules and interaction components. Matches names, descriptions, group labels and command options."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Case-insensitive text to look for"),
	),
	mcp.WithString("section",
		mcp.Description("Restrict results to one section"),
		mcp.Enum("commands", "listeners", "audits", "components"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 20)"),
	),
	mcp.WithString("locale",
		mcp.Description("Locale used for group labels, e.g. hu-HU or en-GB"),
	),
)

// lookupItemTool defines the lookup_item MCP tool.
var lookupItemTool = mcp.NewTool("lookup_item",
	mcp.WithDescription("Get the full documentation view of one catalog item, including command parameters, as JSON."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Item id as returned by search_catalog, e.g. command/ping"),
	),
	mcp.WithString("locale",
		mcp.Description("Locale to render in, e.g. hu-HU or en-GB"),
	),
)

// listGroupsTool defines the list_groups MCP tool.
var listGroupsTool = mcp.NewTool("list_groups",
	mcp.WithDescription("List the groups of a section in display order with their item counts. Without a section every section is listed."),
	mcp.WithString("section",
		mcp.Description("Section to list (default: all sections)"),
		mcp.Enum("commands", "listeners", "audits", "components"),
	),
	mcp.WithString("locale",
		mcp.Description("Locale used for group labels"),
	),
)
