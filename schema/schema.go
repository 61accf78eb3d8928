// Package schema has models, enums and plain data shared by all parts of simbook.
package schema

import "time"

// StoreIdentity uniquely identifies a physical store, e.g. a SIM card serial number.
type StoreIdentity string

// Contact is a single phonebook record.
// ID is assigned by the store and is empty for records that were never created.
type Contact struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// CapacitySource says where a capacity value came from.
type CapacitySource string

// All capacity sources.
const (
	SessionSource CapacitySource = "session" // already resolved in this process
	CacheSource   CapacitySource = "cache"   // read from the persistent cache
	ProbeSource   CapacitySource = "probe"   // discovered by trial writes
)

// CapacityReport describes how the maximum name length of a store was resolved.
type CapacityReport struct {
	Identity      StoreIdentity  `json:"identity"`
	MaxNameLength int            `json:"max_name_length"` // 0 means unknown, do not truncate
	Source        CapacitySource `json:"source"`
	Attempts      int            `json:"attempts"` // probe inserts issued, 0 unless Source is probe
	Cached        bool           `json:"cached"`   // whether the value is persisted
}

// CapacityEntry is one row of the persistent capacity cache.
type CapacityEntry struct {
	Identity      StoreIdentity `json:"identity"`
	MaxNameLength int           `json:"max_name_length"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NormalizedContact pairs an input contact with its store-conforming form.
type NormalizedContact struct {
	Original   Contact `json:"original"`
	Normalized Contact `json:"normalized"`
	Truncated  bool    `json:"truncated"`
}

// CardSpec holds the hidden limits of an emulated SIM card.
type CardSpec struct {
	Serial          string
	MaxNameLength   int
	MaxNumberLength int
	Capacity        int
}

// CardInfo describes the state of an emulated SIM card.
type CardInfo struct {
	Serial    string `json:"serial"`
	Endpoint  string `json:"endpoint"`
	UsedSlots int    `json:"used_slots"`
	Capacity  int    `json:"capacity"`
}
