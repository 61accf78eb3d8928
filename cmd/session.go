package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/simbook/core"
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/phonebook"
	"github.com/huangsam/simbook/internal/simcard"
)

// openSession opens the configured card and binds a phonebook session to it.
// The caller closes the card.
func openSession() (*core.Session, *simcard.Card, error) {
	card, err := simcard.Open(cfg.CardPath)
	if err != nil {
		return nil, nil, err
	}

	contacts := phonebook.NewSimContacts(card, simcard.ResolveEndpoint(cfg.PlatformLevel))
	opts := []core.Option{core.WithLogger(contract.NewLogger(cfg.LogLevel))}
	if store := cacheManager.GetCapacityStore(); store != nil {
		opts = append(opts, core.WithCache(store))
	}
	return core.NewSession(contacts, card, opts...), card, nil
}

// explain adds a next step to errors a user can fix.
func explain(err error) error {
	if errors.Is(err, simcard.ErrNotProvisioned) {
		return fmt.Errorf("%w: run 'simbook card init' first", err)
	}
	return err
}

// runWithSession opens a session, runs fn and closes the card.
// Errors are prefixed with msg.
func runWithSession(msg string, fn func(s *core.Session) error) error {
	s, card, err := openSession()
	if err != nil {
		return fmt.Errorf("failed to open card: %w", err)
	}
	defer func() { _ = card.Close() }()

	if err := fn(s); err != nil {
		return fmt.Errorf("%s: %w", msg, explain(err))
	}
	return nil
}
