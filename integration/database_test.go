//go:build database

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/iocache"
	"github.com/huangsam/simbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts req and returns host:port of its first exposed port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// exerciseBackend runs the capacity store contract and the CLI against one backend.
func exerciseBackend(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	ctx := context.Background()

	t.Run("store", func(t *testing.T) {
		store, err := iocache.NewCacheStore("capacity_cache", backend, connStr)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		_, err = store.Get(ctx, "missing")
		assert.ErrorIs(t, err, contract.ErrCacheMiss)

		require.NoError(t, store.Set(ctx, "8901", 14))
		require.NoError(t, store.Set(ctx, "8901", 16))
		require.NoError(t, store.Set(ctx, "8902", 12))

		v, err := store.Get(ctx, "8901")
		require.NoError(t, err)
		assert.Equal(t, 16, v)

		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, schema.StoreIdentity("8901"), entries[0].Identity)

		status, err := store.GetStatus(ctx)
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, 2, status.TotalEntries)

		require.NoError(t, iocache.ClearCache(ctx, backend, "", connStr))
	})

	t.Run("cli", func(t *testing.T) {
		home := t.TempDir()
		env := []string{
			"SIMBOOK_CACHE_BACKEND=" + string(backend),
			"SIMBOOK_CACHE_DB_CONNECT=" + connStr,
		}

		_, err := runSimbook(t, home, env, "cache", "clear")
		require.NoError(t, err)
		_, err = runSimbook(t, home, env, "card", "init", "--max-name-length", "10")
		require.NoError(t, err)

		var report schema.CapacityReport
		for _, want := range []schema.CapacitySource{schema.ProbeSource, schema.CacheSource} {
			out, err := runSimbook(t, home, env, "capacity", "show", "--output", "json")
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(extractJSON(t, out), &report))
			assert.Equal(t, 10, report.MaxNameLength)
			assert.Equal(t, want, report.Source)
		}

		_, err = runSimbook(t, home, env, "cache", "status")
		require.NoError(t, err)
	})
}

// TestSimbookWithMySQL tests the capacity cache with a MySQL backend.
func TestSimbookWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "simbook",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	exerciseBackend(t, schema.MySQLBackend, fmt.Sprintf("root:secret123@tcp(%s:%s)/simbook", host, port))
}

// TestSimbookWithPostgres tests the capacity cache with a PostgreSQL backend.
func TestSimbookWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}, "5432")

	exerciseBackend(t, schema.PostgreSQLBackend, fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port))
}

// TestSimbookWithRedis tests the capacity cache with a Redis backend.
func TestSimbookWithRedis(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379")

	exerciseBackend(t, schema.RedisBackend, fmt.Sprintf("redis://%s:%s/0", host, port))
}
