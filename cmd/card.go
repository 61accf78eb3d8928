package cmd

import (
	"fmt"

	"github.com/huangsam/simbook/internal/outwriter"
	"github.com/huangsam/simbook/internal/simcard"
	"github.com/huangsam/simbook/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cardCmd focused on the emulated SIM card.
var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Create and inspect the emulated SIM card",
	Long: `Create and inspect the SQLite file that emulates a SIM card.

The card hides its limits like a physical card: writes that break them are
rejected without a reason.`,
}

var cardInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the card with a serial and hidden limits",
	Long: `Provision the card. Existing contacts are kept; limits and serial are replaced.

Examples:
  simbook card init --max-name-length 14
  simbook --card ./test.db card init --serial 8901260000000000001 --capacity 10`,
	PreRunE: cacheSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		spec, err := cardSpecFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		return withCard(func(card *simcard.Card) error {
			if _, err := card.Provision(rootCtx, spec); err != nil {
				return err
			}
			return writeCardInfo(card)
		})
	},
}

var cardInfoCmd = &cobra.Command{
	Use:     "info",
	Short:   "Show serial and slot usage of the card",
	PreRunE: cacheSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withCard(writeCardInfo)
	},
}

// cardSpecFromFlags reads the hidden card limits from the init flags.
func cardSpecFromFlags(flags *pflag.FlagSet) (schema.CardSpec, error) {
	var spec schema.CardSpec
	var err error
	if spec.Serial, err = flags.GetString("serial"); err != nil {
		return spec, fmt.Errorf("invalid --serial: %w", err)
	}
	if spec.MaxNameLength, err = flags.GetInt("max-name-length"); err != nil {
		return spec, fmt.Errorf("invalid --max-name-length: %w", err)
	}
	if spec.MaxNumberLength, err = flags.GetInt("max-number-length"); err != nil {
		return spec, fmt.Errorf("invalid --max-number-length: %w", err)
	}
	if spec.Capacity, err = flags.GetInt("capacity"); err != nil {
		return spec, fmt.Errorf("invalid --capacity: %w", err)
	}
	return spec, nil
}

// withCard opens the configured card, runs fn and closes the card.
func withCard(fn func(card *simcard.Card) error) error {
	card, err := simcard.Open(cfg.CardPath)
	if err != nil {
		return fmt.Errorf("failed to open card: %w", err)
	}
	defer func() { _ = card.Close() }()
	return fn(card)
}

func writeCardInfo(card *simcard.Card) error {
	info, err := card.Info(rootCtx)
	if err != nil {
		return fmt.Errorf("failed to read card: %w", explain(err))
	}
	info.Endpoint = simcard.ResolveEndpoint(cfg.PlatformLevel)
	return outwriter.WriteCardInfo(info, cfg)
}
