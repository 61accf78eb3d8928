// Package cmd defines the command-line interface for simbook.
package cmd

import (
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(capacityCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the contacts subcommands to the parent contacts command
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsAddCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)
	contactsCmd.AddCommand(contactsNormalizeCmd)

	// Add the capacity subcommands to the parent capacity command
	capacityCmd.AddCommand(capacityShowCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	// Add the card subcommands to the parent card command
	cardCmd.AddCommand(cardInitCmd)
	cardCmd.AddCommand(cardInfoCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("card", "", "Path to the emulated SIM card file (default ~/"+contract.DefaultCardFile+")")
	rootCmd.PersistentFlags().Int("platform-level", contract.DefaultPlatformLevel, "Platform level of the device; 4 and above use the icc endpoint")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for the cache backend (e.g., user:pass@tcp(host:port)/dbname or redis://host:6379/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Diagnostic log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Flags of cardInitCmd describe the card itself, so they stay out of Viper
	cardInitCmd.Flags().String("serial", "", "Card serial number (random when empty)")
	cardInitCmd.Flags().Int("max-name-length", 14, "Longest name the card accepts")
	cardInitCmd.Flags().Int("max-number-length", 20, "Longest number the card accepts")
	cardInitCmd.Flags().Int("capacity", 250, "Number of contact slots")
}
