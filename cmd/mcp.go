package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/botdocs/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing catalog search and lookup tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, store, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		content, err := loadContent(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "botdocs MCP server started on stdio (commands=%d, listeners=%d, audits=%d, components=%d)\n",
			len(content.Catalog.Commands), len(content.Catalog.Listeners), len(content.Catalog.Audits), len(content.Catalog.Components))

		srv := mcpserver.NewServer(content, siteFromConfig(cfg), store.Locale(), logger)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
