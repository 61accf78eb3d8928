package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
)

// capacityTable is the name of the table for capacity caching.
const capacityTable = "capacity_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for cache storage.
func GetDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// InitStores initializes the global cache manager with the capacity store.
// An empty backend disables cache initialization.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewCacheStore(capacityTable, backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize capacity caching: %w", err)
			return
		}

		Manager.Lock()
		Manager.capacity = store
		Manager.Unlock()
	})

	return initErr
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.capacity != nil {
			_ = Manager.capacity.Close()
		}
	})
}

// ClearCache clears the cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For Redis, it deletes every capacity key.
// For NoneBackend, it does nothing.
func ClearCache(ctx context.Context, backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable(ctx, "mysql", connStr, quoteTableName(capacityTable, backend))

	case schema.PostgreSQLBackend:
		return clearSQLTable(ctx, "pgx", connStr, quoteTableName(capacityTable, backend))

	case schema.RedisBackend:
		return clearRedis(ctx, connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(ctx context.Context, driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}

// clearRedis removes every capacity key from the redis database.
func clearRedis(ctx context.Context, connStr string) error {
	store, err := NewRedisStore(connStr, redisKeyPrefix)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if _, err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear redis cache: %w", err)
	}
	return nil
}
