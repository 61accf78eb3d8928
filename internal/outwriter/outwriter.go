// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteContacts prints phonebook contacts using the configured output format.
func (ow *OutWriter) WriteContacts(contacts []schema.Contact, cfg *contract.Config) error {
	return WriteContacts(contacts, cfg)
}

// WritePreviews prints normalization previews using the configured output format.
func (ow *OutWriter) WritePreviews(previews []schema.NormalizedContact, limit int, cfg *contract.Config) error {
	return WritePreviews(previews, limit, cfg)
}

// WriteCapacity prints a capacity report using the configured output format.
func (ow *OutWriter) WriteCapacity(report schema.CapacityReport, cfg *contract.Config) error {
	return WriteCapacity(report, cfg)
}

// WriteCacheEntries prints cached capacities using the configured output format.
func (ow *OutWriter) WriteCacheEntries(entries []schema.CapacityEntry, cfg *contract.Config) error {
	return WriteCacheEntries(entries, cfg)
}

// WriteCardInfo prints card state using the configured output format.
func (ow *OutWriter) WriteCardInfo(info schema.CardInfo, cfg *contract.Config) error {
	return WriteCardInfo(info, cfg)
}
