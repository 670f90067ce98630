package cmd

import (
	"fmt"

	"github.com/dvoss/gitdeck/internal/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the commit index over the Model Context Protocol",
	Long: `Run an MCP server on stdio exposing the tracked repositories and
their indexed history as tools. Intended to be launched by an MCP client,
not interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return fmt.Errorf("MCP server is disabled in the configuration")
		}

		app.log.Info("starting MCP server", "transport", "stdio")

		ctx := setupSignalHandler()
		srv := mcp.NewServer(app.history, app.repositories)
		defer func() { _ = srv.Stop() }()

		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("MCP server exited: %w", err)
		}
		return nil
	},
}
