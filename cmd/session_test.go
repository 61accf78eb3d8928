package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/huangsam/simbook/core"
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/iocache"
	"github.com/huangsam/simbook/internal/simcard"
	"github.com/huangsam/simbook/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTestCard points the package config at a fresh card file without a cache.
func useTestCard(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card.db")

	oldCfg, oldManager := cfg, cacheManager
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetCapacityStore").Return(nil)
	cfg = &contract.Config{
		CardPath:      path,
		PlatformLevel: contract.DefaultPlatformLevel,
		Output:        schema.JSONOut,
		CacheBackend:  schema.NoneBackend,
		LogLevel:      zerolog.Disabled,
	}
	cacheManager = mgr
	t.Cleanup(func() { cfg, cacheManager = oldCfg, oldManager })
	return path
}

func TestRunWithSessionReturnsErrors(t *testing.T) {
	useTestCard(t)

	var session *core.Session
	err := runWithSession("failed to resolve capacity", func(s *core.Session) error {
		session = s
		_, err := s.Discoverer().Report(context.Background())
		return err
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, simcard.ErrNotProvisioned)
	assert.ErrorContains(t, err, "failed to resolve capacity")
	assert.ErrorContains(t, err, "simbook card init")

	// The card is closed even though fn failed
	require.NotNil(t, session)
	_, err = session.List(context.Background())
	assert.Error(t, err)
}

func TestRunWithSessionSuccess(t *testing.T) {
	path := useTestCard(t)
	require.NoError(t, withCard(func(card *simcard.Card) error {
		_, err := card.Provision(context.Background(), schema.CardSpec{Serial: "8901", MaxNameLength: 8})
		return err
	}))

	var limit int
	err := runWithSession("failed to resolve capacity", func(s *core.Session) error {
		var err error
		limit, err = s.Discoverer().MaxNameLength(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 8, limit)
	assert.FileExists(t, path)
}

func TestWithCardClosesOnError(t *testing.T) {
	useTestCard(t)
	boom := errors.New("boom")

	var opened *simcard.Card
	err := withCard(func(card *simcard.Card) error {
		opened = card
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NotNil(t, opened)
	_, err = opened.Info(context.Background())
	assert.Error(t, err, "card must be closed after fn returns")
}

func TestCardSpecFromFlags(t *testing.T) {
	flags := cardInitCmd.Flags()
	require.NoError(t, flags.Set("serial", "8901260000000000001"))
	require.NoError(t, flags.Set("capacity", "10"))
	t.Cleanup(func() {
		_ = flags.Set("serial", "")
		_ = flags.Set("capacity", "250")
	})

	spec, err := cardSpecFromFlags(flags)
	require.NoError(t, err)
	assert.Equal(t, schema.CardSpec{Serial: "8901260000000000001", MaxNameLength: 14, MaxNumberLength: 20, Capacity: 10}, spec)
}

func TestExplain(t *testing.T) {
	assert.ErrorContains(t, explain(simcard.ErrNotProvisioned), "simbook card init")

	other := errors.New("disk full")
	assert.Equal(t, other, explain(other))
}
