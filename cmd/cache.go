package cmd

import (
	"fmt"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/iocache"
	"github.com/archlens/archlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend %q (valid: sqlite, mysql, postgresql, none)", backend)
	}

	// Initialize caching with the loaded config (no run tracking for cache commands)
	if err := iocache.InitCaching(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids source tree
// validation and classifier config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the feature extraction cache (improves performance)",
	Long: `Manage the feature-vector cache that speeds up repeated analyses.

ArchLens caches extracted feature vectors keyed on a fingerprint of the
source tree, so unchanged repositories skip the walk-and-parse pass
entirely on subsequent runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  archlens cache status

  # Clear cache after large refactors
  archlens cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached feature vectors",
	Long: `Delete all cached feature vectors from the configured backend.

Use this when:
- The extraction schema changed between versions
- Cache may be stale or corrupted
- Measuring cold-run performance

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  archlens cache clear

  # Clear MySQL cache (set connection string via env variable)
  ARCHLENS_CACHE_BACKEND=mysql ARCHLENS_CACHE_DB_CONNECT="..." archlens cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the feature-vector cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps

Examples:
  # Check cache status
  archlens cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetFeatureStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
