package simcard

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCard(t *testing.T, spec schema.CardSpec) *Card {
	t.Helper()
	card, err := Open(filepath.Join(t.TempDir(), "card.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = card.Close() })

	_, err = card.Provision(context.Background(), spec)
	require.NoError(t, err)
	return card
}

func row(name, number string) contract.Row {
	return contract.Row{contract.FieldName: name, contract.FieldNumber: number}
}

func match(name, number string) contract.Selection {
	return contract.Selection{
		Fields: []string{contract.FieldName, contract.FieldNumber},
		Args:   []string{name, number},
	}
}

func TestCardOpen(t *testing.T) {
	t.Run("reopen keeps records", func(t *testing.T) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "card.db")

		card, err := Open(path)
		require.NoError(t, err)
		_, err = card.Provision(ctx, schema.CardSpec{Serial: "8901", MaxNameLength: 14})
		require.NoError(t, err)
		uri, err := card.Insert(ctx, ICCEndpoint, row("Ann", "123"))
		require.NoError(t, err)
		require.NotEmpty(t, uri)
		require.NoError(t, card.Close())

		card, err = Open(path)
		require.NoError(t, err)
		defer func() { _ = card.Close() }()

		rows, err := card.Query(ctx, ICCEndpoint, nil, contract.FieldName)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		serial, err := card.SerialNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, schema.StoreIdentity("8901"), serial)
	})

	t.Run("memory card", func(t *testing.T) {
		card, err := Open(":memory:")
		require.NoError(t, err)
		defer func() { _ = card.Close() }()

		_, err = card.SerialNumber(context.Background())
		assert.ErrorIs(t, err, ErrNotProvisioned)
	})
}

func TestCardProvision(t *testing.T) {
	card, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = card.Close() }()
	ctx := context.Background()

	t.Run("defaults filled", func(t *testing.T) {
		spec, err := card.Provision(ctx, schema.CardSpec{MaxNameLength: 12})
		require.NoError(t, err)
		assert.NotEmpty(t, spec.Serial, "serial should be generated")
		assert.Equal(t, DefaultMaxNumberLength, spec.MaxNumberLength)
		assert.Equal(t, DefaultCapacity, spec.Capacity)

		serial, err := card.SerialNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, schema.StoreIdentity(spec.Serial), serial)
	})

	t.Run("negative name length rejected", func(t *testing.T) {
		_, err := card.Provision(ctx, schema.CardSpec{MaxNameLength: -1})
		assert.Error(t, err)
	})

	t.Run("reprovision replaces serial", func(t *testing.T) {
		_, err := card.Provision(ctx, schema.CardSpec{Serial: "second", MaxNameLength: 12})
		require.NoError(t, err)
		serial, err := card.SerialNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, schema.StoreIdentity("second"), serial)
	})
}

func TestCardInsert(t *testing.T) {
	ctx := context.Background()
	card := openTestCard(t, schema.CardSpec{Serial: "8901", MaxNameLength: 15, MaxNumberLength: 12, Capacity: 2})

	tests := []struct {
		name    string
		row     contract.Row
		accepts bool
	}{
		{"name at limit", row(strings.Repeat("a", 15), "555"), true},
		{"name over limit", row(strings.Repeat("a", 16), "555"), false},
		{"empty number", row("Bob", ""), false},
		{"number over limit", row("Bob", "1234567890123"), false},
		{"multibyte name counted in characters", row(strings.Repeat("é", 15), "555"), true},
		{"card full", row("Carl", "555"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := card.Insert(ctx, ICCEndpoint, tt.row)
			require.NoError(t, err)
			if tt.accepts {
				assert.True(t, strings.HasPrefix(uri, ICCEndpoint+"/"), "uri %q", uri)
			} else {
				assert.Empty(t, uri)
			}
		})
	}

	info, err := card.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.UsedSlots)
	assert.Equal(t, 2, info.Capacity)
	assert.Equal(t, "8901", info.Serial)
}

func TestCardUnprovisionedRejectsInsert(t *testing.T) {
	card, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = card.Close() }()

	uri, err := card.Insert(context.Background(), ICCEndpoint, row("Ann", "123"))
	require.NoError(t, err)
	assert.Empty(t, uri)
}

func TestCardQuery(t *testing.T) {
	ctx := context.Background()
	card := openTestCard(t, schema.CardSpec{Serial: "8901", MaxNameLength: 20})
	for _, r := range []contract.Row{row("Zed", "3"), row("Amy", "1"), row("Mia", "2")} {
		uri, err := card.Insert(ctx, LegacyEndpoint, r)
		require.NoError(t, err)
		require.NotEmpty(t, uri)
	}

	rows, err := card.Query(ctx, ICCEndpoint, nil, contract.FieldName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Amy", rows[0][contract.FieldName])
	assert.Equal(t, "Mia", rows[1][contract.FieldName])
	assert.Equal(t, "Zed", rows[2][contract.FieldName])
	assert.NotEmpty(t, rows[0][contract.FieldID])

	t.Run("projection", func(t *testing.T) {
		rows, err := card.Query(ctx, ICCEndpoint, []string{contract.FieldNumber}, "")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, contract.Row{contract.FieldNumber: "3"}, rows[0])
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := card.Query(ctx, ICCEndpoint, []string{"email"}, "")
		assert.Error(t, err)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, err := card.Query(ctx, ICCEndpoint, nil, "tag; DROP TABLE adn")
		assert.Error(t, err)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := card.Query(ctx, "content://contacts/people", nil, "")
		assert.ErrorIs(t, err, ErrUnknownEndpoint)
	})
}

func TestCardDelete(t *testing.T) {
	ctx := context.Background()
	card := openTestCard(t, schema.CardSpec{Serial: "8901", MaxNameLength: 30})
	for _, r := range []contract.Row{
		row("O'Brien", "555"),
		row("O'Brien", "555"),
		row("o'brien", "555"),
		row("O'Brien", "556"),
	} {
		uri, err := card.Insert(ctx, ICCEndpoint, r)
		require.NoError(t, err)
		require.NotEmpty(t, uri)
	}

	n, err := card.Delete(ctx, ICCEndpoint, match("O'Brien", "555"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "exact duplicates are removed together")

	n, err = card.Delete(ctx, ICCEndpoint, match("x' OR '1'='1", "555"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "quotes in values never widen the match")

	rows, err := card.Query(ctx, ICCEndpoint, nil, contract.FieldName)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	t.Run("empty selection refused", func(t *testing.T) {
		_, err := card.Delete(ctx, ICCEndpoint, contract.Selection{})
		assert.Error(t, err)
	})

	t.Run("mismatched args refused", func(t *testing.T) {
		_, err := card.Delete(ctx, ICCEndpoint, contract.Selection{Fields: []string{contract.FieldName}})
		assert.Error(t, err)
	})
}
