package core

import (
	"context"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/rs/zerolog"
)

// Probe record written during discovery.
const (
	probeNumber = "24448888888"
	letters     = "abcdefghijklmnopqrstuvwxyz"
)

// probeAlphabet is the longest name tried; its length bounds the probe.
const probeAlphabet = letters + letters

// MaxProbeLength is the longest name length discovery can report.
const MaxProbeLength = len(probeAlphabet)

// probe writes trial contacts with decreasing name length until one is accepted.
// It returns the accepted length (0 if none) and the number of inserts issued.
// Exactly one cleanup delete follows any trial, even when ctx is cancelled.
func probe(ctx context.Context, logger zerolog.Logger, store contract.ContactStore) (int, int, error) {
	var (
		trial    schema.Contact
		attempts int
		found    int
		err      error
	)

	for length := MaxProbeLength; length >= 1; length-- {
		if err = ctx.Err(); err != nil {
			break
		}
		trial = schema.Contact{Name: probeAlphabet[:length], Number: probeNumber}
		attempts++
		accepted := store.Create(ctx, trial)
		logger.Debug().Int("length", length).Bool("accepted", accepted).Msg("probe")
		if accepted {
			found = length
			break
		}
	}

	if attempts > 0 {
		// The trial may still exist when ctx was cancelled after Create
		_ = store.Delete(context.WithoutCancel(ctx), trial)
	}
	if err != nil {
		return 0, attempts, err
	}

	logger.Info().Int("max_name_length", found).Int("attempts", attempts).Msg("capacity discovered")
	return found, attempts, nil
}
