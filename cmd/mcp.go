package cmd

import (
	"github.com/huangsam/simbook/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the simbook MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents read and write
phonebook contacts through the same normalization as the CLI.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		s, card, err := openSession()
		if err != nil {
			return err
		}
		defer func() { _ = card.Close() }()
		return mcp.StartMCPServer(rootCtx, s, version)
	},
}
