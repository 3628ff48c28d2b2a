package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/seistools/seisavail/internal/histstore"
	"github.com/seistools/seisavail/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the seisavail MCP server",
	Long:  `Launch an MCP server that allows AI agents to query availability histories via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The server reads histories only; no year list is needed up front.
		return sharedSetup(false, false)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := histstore.NewHistoryStore(cfg.StoreBackend, cfg.ProductPath, cfg.Category, cfg.StoreDBConnect)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return mcp.StartAvailabilityServer(context.Background(), cfg, store)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
