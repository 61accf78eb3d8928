package contract

import (
	"context"

	"github.com/huangsam/simbook/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetCapacityStore() CapacityStore
}

// CapacityStore persists the maximum accepted name length per store identity.
// Get returns ErrCacheMiss when the identity has no entry.
type CapacityStore interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value int) error
	List(ctx context.Context) ([]schema.CapacityEntry, error)
	GetStatus(ctx context.Context) (schema.CacheStatus, error)
	Close() error
}
