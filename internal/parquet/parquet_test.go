package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/simbook/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowStructTags(t *testing.T) {
	tests := []struct {
		name    string
		schema  *parquet.Schema
		columns []string
	}{
		{name: "contact", schema: parquet.SchemaOf(new(ContactRow)), columns: []string{"id", "name", "number"}},
		{name: "normalized", schema: parquet.SchemaOf(new(NormalizedRow)), columns: []string{"name", "number", "normalized_name", "normalized_number", "label"}},
		{name: "capacity", schema: parquet.SchemaOf(new(CapacityRow)), columns: []string{"identity", "max_name_length", "updated_at"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.schema)
			for _, colName := range tt.columns {
				_, ok := tt.schema.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func TestContactRows(t *testing.T) {
	rows := ContactRows([]schema.Contact{
		{ID: "4", Name: "Ann", Number: "5550100"},
		{Name: "Bob", Number: "5550101"},
	})
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].ID)
	assert.Equal(t, "4", *rows[0].ID)
	assert.Nil(t, rows[1].ID)
	assert.Equal(t, "Bob", rows[1].Name)
}

func TestNormalizedRows(t *testing.T) {
	rows := NormalizedRows([]schema.NormalizedContact{{
		Original:   schema.Contact{Name: "Bartholomew", Number: "555-01"},
		Normalized: schema.Contact{Name: "Barth", Number: "55501"},
		Truncated:  true,
	}}, func(p schema.NormalizedContact) string { return "Truncated" })

	require.Len(t, rows, 1)
	assert.Equal(t, NormalizedRow{
		Name:             "Bartholomew",
		Number:           "555-01",
		NormalizedName:   "Barth",
		NormalizedNumber: "55501",
		Label:            "Truncated",
	}, rows[0])
}

func TestWriteParquetRoundTrip(t *testing.T) {
	updated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []schema.CapacityEntry{
		{Identity: "8901", MaxNameLength: 14, UpdatedAt: updated},
		{Identity: "8902", MaxNameLength: 18, UpdatedAt: updated.Add(time.Hour)},
	}
	outputPath := filepath.Join(t.TempDir(), "capacity.parquet")

	require.NoError(t, WriteParquet(CapacityRows(entries), outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[CapacityRow](file)
	defer func() { _ = reader.Close() }()
	require.Equal(t, int64(2), reader.NumRows())

	rows := make([]CapacityRow, 2)
	n, _ := reader.Read(rows)
	require.Equal(t, 2, n)
	assert.Equal(t, "8901", rows[0].Identity)
	assert.Equal(t, int32(14), rows[0].MaxNameLength)
	assert.True(t, updated.Equal(rows[0].UpdatedAt))
	assert.Equal(t, int32(18), rows[1].MaxNameLength)
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteParquet([]ContactRow{}, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
