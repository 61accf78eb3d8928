package core

import (
	"context"
	"errors"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/rs/zerolog"
)

// checkCacheHit returns a positive persisted capacity for id.
// Read failures are logged and treated as a miss.
func (d *Discoverer) checkCacheHit(ctx context.Context, logger zerolog.Logger, id schema.StoreIdentity) (int, bool) {
	if d.cache == nil {
		return 0, false
	}

	v, err := d.cache.Get(ctx, string(id))
	if err != nil {
		if !errors.Is(err, contract.ErrCacheMiss) {
			logger.Warn().Err(err).Msg("capacity cache read failed, probing instead")
		}
		return 0, false
	}
	if v <= 0 {
		return 0, false
	}

	logger.Debug().Int("max_name_length", v).Msg("capacity cache hit")
	return v, true
}

// computeAndStore probes the store and persists a positive result.
// Write failures are logged and the probed value is still returned.
func (d *Discoverer) computeAndStore(ctx context.Context, logger zerolog.Logger, id schema.StoreIdentity) (int, int, error) {
	v, attempts, err := probe(ctx, logger, d.contacts)
	if err != nil {
		return 0, attempts, err
	}

	if v > 0 && d.cache != nil {
		if err := d.cache.Set(ctx, string(id), v); err != nil {
			logger.Warn().Err(err).Msg("capacity cache write failed")
		}
	}
	return v, attempts, nil
}
