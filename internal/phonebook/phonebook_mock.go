package phonebook

import (
	"context"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/stretchr/testify/mock"
)

// MockContactStore is a mock implementation of ContactStore for testing.
type MockContactStore struct {
	mock.Mock
}

var _ contract.ContactStore = &MockContactStore{} // Compile-time check

// List implements the ContactStore interface.
func (m *MockContactStore) List(ctx context.Context) ([]schema.Contact, error) {
	args := m.Called(ctx)
	contacts, _ := args.Get(0).([]schema.Contact)
	return contacts, args.Error(1)
}

// Create implements the ContactStore interface.
func (m *MockContactStore) Create(ctx context.Context, contact schema.Contact) bool {
	args := m.Called(ctx, contact)
	return args.Bool(0)
}

// Delete implements the ContactStore interface.
func (m *MockContactStore) Delete(ctx context.Context, contact schema.Contact) bool {
	args := m.Called(ctx, contact)
	return args.Bool(0)
}
