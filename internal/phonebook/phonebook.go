// Package phonebook maps phonebook contacts onto raw record store rows.
package phonebook

import (
	"context"
	"fmt"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
)

// projection is the set of fields read for every contact.
var projection = []string{contract.FieldName, contract.FieldNumber, contract.FieldID}

// SimContacts is a ContactStore over the phonebook endpoint of a record store.
type SimContacts struct {
	store    contract.RecordStore
	endpoint string
}

var _ contract.ContactStore = &SimContacts{} // Compile-time check

// NewSimContacts returns a contact store bound to one endpoint of store.
func NewSimContacts(store contract.RecordStore, endpoint string) *SimContacts {
	return &SimContacts{store: store, endpoint: endpoint}
}

// List returns every contact ordered by name ascending.
// A store without rows yields an empty slice.
func (s *SimContacts) List(ctx context.Context) ([]schema.Contact, error) {
	rows, err := s.store.Query(ctx, s.endpoint, projection, contract.FieldName)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts := make([]schema.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, schema.Contact{
			ID:     row[contract.FieldID],
			Name:   row[contract.FieldName],
			Number: row[contract.FieldNumber],
		})
	}
	return contacts, nil
}

// Create inserts the contact's name and number.
// It is true only when the store hands back a row URI.
func (s *SimContacts) Create(ctx context.Context, contact schema.Contact) bool {
	uri, err := s.store.Insert(ctx, s.endpoint, contract.Row{
		contract.FieldName:   contact.Name,
		contract.FieldNumber: contact.Number,
	})
	return err == nil && uri != ""
}

// Delete removes every record whose name and number equal the contact's exactly.
// The ID is ignored since the store does not hand back usable ids on insert.
func (s *SimContacts) Delete(ctx context.Context, contact schema.Contact) bool {
	removed, err := s.store.Delete(ctx, s.endpoint, MatchSelection(contact))
	return err == nil && removed > 0
}

// MatchSelection returns the exact name and number selection for a contact.
func MatchSelection(contact schema.Contact) contract.Selection {
	return contract.Selection{
		Fields: []string{contract.FieldName, contract.FieldNumber},
		Args:   []string{contact.Name, contact.Number},
	}
}
