package cmd

import (
	"github.com/huangsam/simbook/core"
	"github.com/huangsam/simbook/schema"
	"github.com/spf13/cobra"
)

// contactsCmd focused on phonebook records.
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Read and write phonebook contacts",
	Long: `Read and write contacts on the SIM phonebook.

Names are shortened to the card's name limit and dashes are removed from
numbers before a contact is written. The limit is discovered on first use.

Subcommands:
  list      - Show every contact ordered by name
  add       - Write a contact in its normalized form
  delete    - Remove contacts by exact name and number
  normalize - Show how a contact would be stored, without writing it`,
}

var contactsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show every contact ordered by name",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runWithSession("failed to list contacts", func(s *core.Session) error {
			return core.ExecuteListContacts(rootCtx, cfg, s)
		})
	},
}

var contactsAddCmd = &cobra.Command{
	Use:   "add <name> <number>",
	Short: "Write a contact, shortened to fit the card",
	Long: `Write a contact to the card.

The first write to a card whose limit is unknown triggers discovery: trial
records with decreasing name length are written until one is accepted, then
removed again. The limit is cached per card serial.

Examples:
  simbook contacts add "Bartholomew-Jacobson" 555-012-3456`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		c := schema.Contact{Name: args[0], Number: args[1]}
		return runWithSession("failed to add contact", func(s *core.Session) error {
			return core.ExecuteAddContact(rootCtx, cfg, s, c)
		})
	},
}

var contactsDeleteCmd = &cobra.Command{
	Use:     "delete <name> <number>",
	Short:   "Remove contacts with exactly this name and number",
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		c := schema.Contact{Name: args[0], Number: args[1]}
		return runWithSession("failed to delete contact", func(s *core.Session) error {
			return core.ExecuteDeleteContact(rootCtx, cfg, s, c)
		})
	},
}

var contactsNormalizeCmd = &cobra.Command{
	Use:     "normalize <name> <number>",
	Short:   "Show how a contact would be stored",
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		c := schema.Contact{Name: args[0], Number: args[1]}
		return runWithSession("failed to normalize contact", func(s *core.Session) error {
			return core.ExecuteNormalize(rootCtx, cfg, s, c)
		})
	},
}
