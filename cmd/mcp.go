package cmd

import (
	"github.com/covid19gng/goodnews/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the goodnews MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents query good news and
locations via standard tools. Flags set the defaults for every tool call.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newSource(), storeManager)
	},
}
