package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/simbook/core"
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/iocache"
	"github.com/spf13/cobra"
)

// cacheSetupWrapper loads config without opening the cache, for commands that replace it.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return loadConfig()
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the capacity cache",
	Long: `Manage the cache of discovered name length limits.

Each card's limit is stored under its serial number so discovery runs once per card.

Supported backends: SQLite (default), MySQL, PostgreSQL, Redis, or None

Subcommands:
  status - Show cache statistics and connection info
  list   - Show every cached card limit
  clear  - Remove all cached limits`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached limits",
	Long: `Delete every cached name length limit from the configured backend.
The next use of each card runs discovery again.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table
For Redis: Deletes the simbook:capacity:* keys

Examples:
  # Clear Redis cache (set connection string via env variable)
  SIMBOOK_CACHE_BACKEND=redis SIMBOOK_CACHE_DB_CONNECT="redis://localhost:6379/0" simbook cache clear`,
	PreRunE: cacheSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		dbFilePath := cfg.CacheDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetCacheDBFilePath()
		}
		if err := iocache.ClearCache(rootCtx, cfg.CacheBackend, dbFilePath, cfg.CacheDBConnect); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cache cleared successfully.")
		return nil
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display cache statistics and connection details",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		status, err := cacheManager.GetCapacityStore().GetStatus(rootCtx)
		if err != nil {
			return fmt.Errorf("failed to get cache status: %w", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
		return nil
	},
}

// cacheListCmd lists cached limits.
var cacheListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show every cached card limit",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := core.ExecuteCacheList(rootCtx, cfg, cacheManager); err != nil {
			return fmt.Errorf("failed to list cache: %w", err)
		}
		return nil
	},
}
