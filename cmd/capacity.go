package cmd

import (
	"github.com/huangsam/simbook/core"
	"github.com/spf13/cobra"
)

// capacityCmd focused on the name length limit of the card.
var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Inspect the name length limit of the card",
}

var capacityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Resolve and print the name length limit",
	Long: `Resolve the longest contact name the card accepts.

The value comes from this process, then from the capacity cache, and only
then from trial writes against the card. The source and the number of
trial writes are printed with the result. A limit of 0 (unknown) is never cached.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runWithSession("failed to resolve capacity", func(s *core.Session) error {
			return core.ExecuteCapacity(rootCtx, cfg, s)
		})
	},
}
