package core

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/outwriter"
	"github.com/huangsam/simbook/schema"
)

// writer renders every command result.
var writer = outwriter.NewOutWriter()

// ExecuteListContacts prints the phonebook.
func ExecuteListContacts(ctx context.Context, cfg *contract.Config, s *Session) error {
	contacts, err := s.List(ctx)
	if err != nil {
		return err
	}
	return writer.WriteContacts(contacts, cfg)
}

// ExecuteAddContact writes a contact in its normalized form and prints what was stored.
func ExecuteAddContact(ctx context.Context, cfg *contract.Config, s *Session, c schema.Contact) error {
	stored, err := s.Add(ctx, c)
	if err != nil {
		return err
	}
	limit, err := s.Discoverer().MaxNameLength(ctx)
	if err != nil {
		return err
	}
	preview := PreviewContact(c, limit)
	preview.Normalized = stored
	return writer.WritePreviews([]schema.NormalizedContact{preview}, limit, cfg)
}

// ExecuteDeleteContact removes a contact by exact name and number.
func ExecuteDeleteContact(ctx context.Context, _ *contract.Config, s *Session, c schema.Contact) error {
	if err := s.Remove(ctx, c); err != nil {
		return err
	}
	_, err := fmt.Fprintf(os.Stdout, "Deleted %s <%s>\n", c.Name, c.Number)
	return err
}

// ExecuteNormalize prints how contacts would be stored without writing them.
func ExecuteNormalize(ctx context.Context, cfg *contract.Config, s *Session, contacts ...schema.Contact) error {
	previews, limit, err := s.Preview(ctx, contacts...)
	if err != nil {
		return err
	}
	return writer.WritePreviews(previews, limit, cfg)
}

// ExecuteCapacity resolves and prints the name limit of the attached store.
func ExecuteCapacity(ctx context.Context, cfg *contract.Config, s *Session) error {
	report, err := s.Discoverer().Report(ctx)
	if err != nil {
		return err
	}
	return writer.WriteCapacity(report, cfg)
}

// ExecuteCacheList prints every persisted capacity.
func ExecuteCacheList(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	store := mgr.GetCapacityStore()
	if store == nil {
		return writer.WriteCacheEntries(nil, cfg)
	}
	entries, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}
	return writer.WriteCacheEntries(entries, cfg)
}
