// Package core has the capacity discovery, normalization and phonebook session logic.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
)

// Phonebook write failures. The store gives no further detail.
var (
	ErrContactRejected = errors.New("store rejected the contact")
	ErrContactNotFound = errors.New("no contact matches the given name and number")
)

// Session pairs a contact store with the discoverer bound to the same store.
type Session struct {
	contacts   contract.ContactStore
	discoverer *Discoverer
}

// NewSession returns a Session over contacts whose physical store is identified by identity.
func NewSession(contacts contract.ContactStore, identity contract.IdentitySource, opts ...Option) *Session {
	return &Session{
		contacts:   contacts,
		discoverer: New(contacts, identity, opts...),
	}
}

// Discoverer returns the capacity discoverer of the session.
func (s *Session) Discoverer() *Discoverer {
	return s.discoverer
}

// List returns every contact ordered by name.
func (s *Session) List(ctx context.Context) ([]schema.Contact, error) {
	return s.contacts.List(ctx)
}

// Add validates c, normalizes it against the store limit and writes it.
// The stored form is returned.
func (s *Session) Add(ctx context.Context, c schema.Contact) (schema.Contact, error) {
	if err := c.Validate(); err != nil {
		return schema.Contact{}, fmt.Errorf("invalid contact: %w", err)
	}
	normalized, err := s.discoverer.Normalize(ctx, c)
	if err != nil {
		return schema.Contact{}, err
	}
	if !s.contacts.Create(ctx, normalized) {
		return normalized, ErrContactRejected
	}
	return normalized, nil
}

// Remove deletes every record with exactly c's name and number.
// Any listed record can be removed, whatever its number looks like.
func (s *Session) Remove(ctx context.Context, c schema.Contact) error {
	if err := c.ValidateKey(); err != nil {
		return fmt.Errorf("invalid contact: %w", err)
	}
	if !s.contacts.Delete(ctx, c) {
		return ErrContactNotFound
	}
	return nil
}

// Preview normalizes every contact without writing anything.
// The resolved name limit is returned alongside.
func (s *Session) Preview(ctx context.Context, contacts ...schema.Contact) ([]schema.NormalizedContact, int, error) {
	for _, c := range contacts {
		if err := c.Validate(); err != nil {
			return nil, 0, fmt.Errorf("invalid contact %q: %w", c.Name, err)
		}
	}
	limit, err := s.discoverer.MaxNameLength(ctx)
	if err != nil {
		return nil, 0, err
	}
	previews := make([]schema.NormalizedContact, 0, len(contacts))
	for _, c := range contacts {
		previews = append(previews, PreviewContact(c, limit))
	}
	return previews, limit, nil
}
