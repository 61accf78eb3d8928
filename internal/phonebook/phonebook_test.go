package phonebook

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/simcard"
	"github.com/huangsam/simbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore is a RecordStore whose every call errors.
type failingStore struct{}

func (failingStore) Query(context.Context, string, []string, string) ([]contract.Row, error) {
	return nil, errors.New("card removed")
}

func (failingStore) Insert(context.Context, string, contract.Row) (string, error) {
	return "", errors.New("card removed")
}

func (failingStore) Delete(context.Context, string, contract.Selection) (int64, error) {
	return 0, errors.New("card removed")
}

func TestSimContactsList(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields empty slice", func(t *testing.T) {
		store := NewSimContacts(simcard.NewMemoryCard(schema.CardSpec{MaxNameLength: 10}), simcard.ICCEndpoint)
		contacts, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)
	})

	t.Run("ordered by name", func(t *testing.T) {
		card := simcard.NewMemoryCard(schema.CardSpec{MaxNameLength: 10})
		store := NewSimContacts(card, simcard.ICCEndpoint)
		require.True(t, store.Create(ctx, schema.Contact{Name: "Zoe", Number: "2"}))
		require.True(t, store.Create(ctx, schema.Contact{Name: "Adam", Number: "1"}))

		contacts, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, schema.Contact{ID: "2", Name: "Adam", Number: "1"}, contacts[0])
		assert.Equal(t, schema.Contact{ID: "1", Name: "Zoe", Number: "2"}, contacts[1])
	})

	t.Run("transport error wrapped", func(t *testing.T) {
		store := NewSimContacts(failingStore{}, simcard.ICCEndpoint)
		_, err := store.List(ctx)
		assert.ErrorContains(t, err, "card removed")
	})
}

func TestSimContactsCreate(t *testing.T) {
	ctx := context.Background()
	card := simcard.NewMemoryCard(schema.CardSpec{MaxNameLength: 5})
	store := NewSimContacts(card, simcard.ICCEndpoint)

	assert.True(t, store.Create(ctx, schema.Contact{Name: "Bart", Number: "555"}))
	assert.False(t, store.Create(ctx, schema.Contact{Name: "Bartholomew", Number: "555"}), "rejection surfaces only as false")
	assert.False(t, NewSimContacts(failingStore{}, simcard.ICCEndpoint).Create(ctx, schema.Contact{Name: "a", Number: "1"}))
	assert.False(t, NewSimContacts(card, "content://bogus").Create(ctx, schema.Contact{Name: "a", Number: "1"}))
}

func TestSimContactsDelete(t *testing.T) {
	ctx := context.Background()
	card := simcard.NewMemoryCard(schema.CardSpec{MaxNameLength: 10})
	store := NewSimContacts(card, simcard.ICCEndpoint)
	require.True(t, store.Create(ctx, schema.Contact{Name: "Ann", Number: "555"}))
	require.True(t, store.Create(ctx, schema.Contact{Name: "ann", Number: "555"}))

	assert.False(t, store.Delete(ctx, schema.Contact{ID: "1", Name: "Ann", Number: "5550"}), "id is never used for matching")
	assert.True(t, store.Delete(ctx, schema.Contact{ID: "99", Name: "Ann", Number: "555"}))
	assert.False(t, store.Delete(ctx, schema.Contact{Name: "Ann", Number: "555"}), "already removed")
	assert.Equal(t, 1, card.Len())
	assert.False(t, NewSimContacts(failingStore{}, simcard.ICCEndpoint).Delete(ctx, schema.Contact{Name: "a", Number: "1"}))

	require.Len(t, card.Deletes, 3)
	assert.Equal(t, MatchSelection(schema.Contact{Name: "Ann", Number: "555"}), card.Deletes[1])
}
