package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/rs/zerolog"
)

// ErrNoStoreIdentity is returned when the attached store cannot be identified.
var ErrNoStoreIdentity = errors.New("store identity is empty")

// Discoverer resolves the maximum contact-name length accepted by a store.
//
// Resolution order is the in-process memo, then the persistent cache, then a
// destructive probe against the store. A result of 0 is kept nowhere, so the
// next call probes again. Only one resolution runs at a time.
// The store must not be written to by anyone else while a probe is running.
type Discoverer struct {
	contacts contract.ContactStore
	identity contract.IdentitySource
	cache    contract.CapacityStore
	logger   zerolog.Logger

	mu      sync.Mutex
	session map[schema.StoreIdentity]int
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithCache sets the persistent capacity cache. Without one, nothing is persisted.
func WithCache(cache contract.CapacityStore) Option {
	return func(d *Discoverer) {
		d.cache = cache
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// New returns a Discoverer probing contacts and keyed by the identity of the same store.
func New(contacts contract.ContactStore, identity contract.IdentitySource, opts ...Option) *Discoverer {
	d := &Discoverer{
		contacts: contacts,
		identity: identity,
		logger:   zerolog.Nop(),
		session:  make(map[schema.StoreIdentity]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MaxNameLength returns the longest name the store accepts, or 0 if no limit could be determined.
func (d *Discoverer) MaxNameLength(ctx context.Context) (int, error) {
	report, err := d.Report(ctx)
	if err != nil {
		return 0, err
	}
	return report.MaxNameLength, nil
}

// Report resolves the maximum name length and says where it came from.
func (d *Discoverer) Report(ctx context.Context) (schema.CapacityReport, error) {
	id, err := d.identity.SerialNumber(ctx)
	if err != nil {
		return schema.CapacityReport{}, fmt.Errorf("failed to read store identity: %w", err)
	}
	if id == "" {
		return schema.CapacityReport{}, ErrNoStoreIdentity
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	report := schema.CapacityReport{Identity: id}
	logger := d.logger.With().Str("identity", string(id)).Logger()

	if v, ok := d.session[id]; ok {
		report.MaxNameLength = v
		report.Source = schema.SessionSource
		report.Cached = d.cache != nil
		return report, nil
	}

	if v, ok := d.checkCacheHit(ctx, logger, id); ok {
		d.session[id] = v
		report.MaxNameLength = v
		report.Source = schema.CacheSource
		report.Cached = true
		return report, nil
	}

	v, attempts, err := d.computeAndStore(ctx, logger, id)
	report.Attempts = attempts
	if err != nil {
		return report, err
	}
	if v > 0 {
		d.session[id] = v
	}
	report.MaxNameLength = v
	report.Source = schema.ProbeSource
	report.Cached = v > 0 && d.cache != nil
	return report, nil
}

// Normalize returns c shaped to fit the store, discovering the limit if needed.
func (d *Discoverer) Normalize(ctx context.Context, c schema.Contact) (schema.Contact, error) {
	limit, err := d.MaxNameLength(ctx)
	if err != nil {
		return schema.Contact{}, err
	}
	return NormalizeContact(c, limit), nil
}

// Preview normalizes c and reports whether its name had to be shortened.
func (d *Discoverer) Preview(ctx context.Context, c schema.Contact) (schema.NormalizedContact, error) {
	limit, err := d.MaxNameLength(ctx)
	if err != nil {
		return schema.NormalizedContact{}, err
	}
	return PreviewContact(c, limit), nil
}
