package iocache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces capacity entries inside a shared redis database.
const redisKeyPrefix = "simbook:capacity:"

// Hash fields of a single capacity entry.
const (
	fieldValue     = "value"
	fieldTimestamp = "ts"
)

// RedisStore keeps capacities as redis hashes, one key per store identity.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ contract.CapacityStore = &RedisStore{} // Compile-time check

// NewRedisStore connects to the redis URL in connStr and verifies the connection.
func NewRedisStore(connStr, prefix string) (*RedisStore, error) {
	client, err := newRedisClient(connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

// newRedisClient parses a redis:// or rediss:// URL into a client with sane timeouts.
func newRedisClient(connStr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w. Expected redis://[:password@]host:port/db", err)
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return redis.NewClient(opts), nil
}

func (rs *RedisStore) key(id string) string {
	return rs.prefix + id
}

// Get retrieves the capacity stored for key.
func (rs *RedisStore) Get(ctx context.Context, key string) (int, error) {
	raw, err := rs.client.HGet(ctx, rs.key(key), fieldValue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, contract.ErrCacheMiss
		}
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt capacity for %s: %w", key, err)
	}
	return value, nil
}

// Set stores the capacity for key along with the write time.
func (rs *RedisStore) Set(ctx context.Context, key string, value int) error {
	return rs.client.HSet(ctx, rs.key(key),
		fieldValue, value,
		fieldTimestamp, time.Now().Unix(),
	).Err()
}

// scanKeys walks every key under the store prefix.
func (rs *RedisStore) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := rs.client.Scan(ctx, 0, rs.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan redis keys: %w", err)
	}
	return keys, nil
}

// List returns every cached capacity ordered by identity.
func (rs *RedisStore) List(ctx context.Context) ([]schema.CapacityEntry, error) {
	keys, err := rs.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]schema.CapacityEntry, 0, len(keys))
	for _, k := range keys {
		fields, err := rs.client.HGetAll(ctx, k).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", k, err)
		}
		value, err := strconv.Atoi(fields[fieldValue])
		if err != nil {
			continue // skip entries this tool did not write
		}
		ts, _ := strconv.ParseInt(fields[fieldTimestamp], 10, 64)
		entries = append(entries, schema.CapacityEntry{
			Identity:      schema.StoreIdentity(strings.TrimPrefix(k, rs.prefix)),
			MaxNameLength: value,
			UpdatedAt:     time.Unix(ts, 0),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Identity < entries[j].Identity
	})
	return entries, nil
}

// GetStatus returns status information about the redis store.
func (rs *RedisStore) GetStatus(ctx context.Context) (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.RedisBackend),
		Connected: rs.client.Ping(ctx).Err() == nil,
	}
	if !status.Connected {
		return status, nil
	}

	entries, err := rs.List(ctx)
	if err != nil {
		return status, err
	}
	status.TotalEntries = len(entries)

	for i, e := range entries {
		if i == 0 || e.UpdatedAt.After(status.LastEntryTime) {
			status.LastEntryTime = e.UpdatedAt
		}
		if i == 0 || e.UpdatedAt.Before(status.OldestEntryTime) {
			status.OldestEntryTime = e.UpdatedAt
		}
		// MEMORY USAGE is unavailable on some managed redis offerings
		if size, err := rs.client.MemoryUsage(ctx, rs.key(string(e.Identity))).Result(); err == nil {
			status.TableSizeBytes += size
		}
	}
	return status, nil
}

// Clear deletes every key under the store prefix and reports how many were removed.
func (rs *RedisStore) Clear(ctx context.Context) (int64, error) {
	keys, err := rs.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return rs.client.Del(ctx, keys...).Result()
}

// Close closes the redis client.
func (rs *RedisStore) Close() error {
	if rs.client != nil {
		return rs.client.Close()
	}
	return nil
}
