// Package iocache persists discovered store capacities across runs.
package iocache

import (
	"sync"

	"github.com/huangsam/simbook/internal/contract"
)

// CacheStoreManager manages the CapacityStore instance.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	capacity     contract.CapacityStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetCapacityStore returns the capacity CapacityStore.
func (mgr *CacheStoreManager) GetCapacityStore() contract.CapacityStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.capacity
}
