// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/simbook/schema"
)

// Raw field names of a phonebook row in the record store.
const (
	FieldID     = "_id"
	FieldName   = "tag"
	FieldNumber = "number"
)

// Row is a single raw record keyed by field name.
type Row map[string]string

// Selection is a parameterized equality filter.
// A row matches when every listed field equals the given value exactly.
type Selection struct {
	Fields []string
	Args   []string
}

// RecordStore is the external phonebook transport, e.g. a SIM card's ADN table.
// It offers no diagnostics: a rejected insert returns an empty URI.
type RecordStore interface {
	// Query returns rows of the endpoint sorted ascending by the sortBy field.
	Query(ctx context.Context, endpoint string, projection []string, sortBy string) ([]Row, error)

	// Insert creates a row and returns its URI, or "" when the store rejects it.
	Insert(ctx context.Context, endpoint string, values Row) (string, error)

	// Delete removes matching rows and returns how many were removed.
	Delete(ctx context.Context, endpoint string, where Selection) (int64, error)
}

// IdentitySource returns the identity of the physical store that is attached.
type IdentitySource interface {
	SerialNumber(ctx context.Context) (schema.StoreIdentity, error)
}

// ContactStore is the typed CRUD contract over phonebook contacts.
// Create and Delete only report success or failure.
type ContactStore interface {
	List(ctx context.Context) ([]schema.Contact, error)
	Create(ctx context.Context, contact schema.Contact) bool
	Delete(ctx context.Context, contact schema.Contact) bool
}

// ErrCacheMiss is returned by a CapacityStore when no value exists for a key.
var ErrCacheMiss = errors.New("capacity cache miss")
