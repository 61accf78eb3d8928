// Package parquet provides row types and writers for exporting simbook
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/simbook/schema"
	"github.com/parquet-go/parquet-go"
)

// ContactRow is a single phonebook record.
type ContactRow struct {
	// ID is the store-assigned record id (nullable for contacts never written)
	ID *string `parquet:"id,optional,snappy"`

	Name   string `parquet:"name,snappy"`
	Number string `parquet:"number,snappy"`
}

// NormalizedRow pairs an input contact with the form the store accepts.
type NormalizedRow struct {
	Name             string `parquet:"name,snappy"`
	Number           string `parquet:"number,snappy"`
	NormalizedName   string `parquet:"normalized_name,snappy"`
	NormalizedNumber string `parquet:"normalized_number,snappy"`

	// Label is one of Fits, Truncated or Unknown
	Label string `parquet:"label,snappy"`
}

// CapacityRow is one persisted capacity of a store.
type CapacityRow struct {
	Identity      string `parquet:"identity,snappy"`
	MaxNameLength int32  `parquet:"max_name_length,snappy"`

	// UpdatedAt is stored as TIMESTAMP with nanosecond precision
	UpdatedAt time.Time `parquet:"updated_at,snappy"`
}

// ContactRows converts contacts to Parquet rows.
func ContactRows(contacts []schema.Contact) []ContactRow {
	rows := make([]ContactRow, len(contacts))
	for i, c := range contacts {
		rows[i] = ContactRow{Name: c.Name, Number: c.Number}
		if c.ID != "" {
			id := c.ID
			rows[i].ID = &id
		}
	}
	return rows
}

// NormalizedRows converts normalization previews to Parquet rows.
// label maps each preview to its display label.
func NormalizedRows(previews []schema.NormalizedContact, label func(schema.NormalizedContact) string) []NormalizedRow {
	rows := make([]NormalizedRow, len(previews))
	for i, p := range previews {
		rows[i] = NormalizedRow{
			Name:             p.Original.Name,
			Number:           p.Original.Number,
			NormalizedName:   p.Normalized.Name,
			NormalizedNumber: p.Normalized.Number,
			Label:            label(p),
		}
	}
	return rows
}

// CapacityRows converts cache entries to Parquet rows.
func CapacityRows(entries []schema.CapacityEntry) []CapacityRow {
	rows := make([]CapacityRow, len(entries))
	for i, e := range entries {
		rows[i] = CapacityRow{
			Identity:      string(e.Identity),
			MaxNameLength: int32(e.MaxNameLength),
			UpdatedAt:     e.UpdatedAt,
		}
	}
	return rows
}

// WriteParquet writes rows to a Parquet file whose schema is inferred from T.
func WriteParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
