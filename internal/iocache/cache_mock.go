package iocache

import (
	"context"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetCapacityStore implements the CacheManager interface.
func (m *MockCacheManager) GetCapacityStore() contract.CapacityStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CapacityStore)
	return store
}

// MockCapacityStore is a mock implementation of CapacityStore for testing.
type MockCapacityStore struct {
	mock.Mock
}

var _ contract.CapacityStore = &MockCapacityStore{} // Compile-time check

// Get implements the CapacityStore interface.
func (m *MockCapacityStore) Get(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// Set implements the CapacityStore interface.
func (m *MockCapacityStore) Set(ctx context.Context, key string, value int) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// List implements the CapacityStore interface.
func (m *MockCapacityStore) List(ctx context.Context) ([]schema.CapacityEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]schema.CapacityEntry)
	return entries, args.Error(1)
}

// Close implements the CapacityStore interface.
func (m *MockCapacityStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CapacityStore interface.
func (m *MockCapacityStore) GetStatus(ctx context.Context) (schema.CacheStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}
