package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/archlens/archlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteCache opens a throwaway SQLite cache store.
func newSQLiteCache(t *testing.T) *CacheStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("feature_cache_test", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

// TestCacheStoreRoundtrip verifies Set then Get returns what was stored.
func TestCacheStoreRoundtrip(t *testing.T) {
	store := newSQLiteCache(t)

	require.NoError(t, store.Set("features:abc", []byte(`{"loc":10}`), 1, 1700000000))

	value, version, ts, err := store.Get("features:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"loc":10}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)
}

// TestCacheStoreOverwrite verifies Set replaces existing entries.
func TestCacheStoreOverwrite(t *testing.T) {
	store := newSQLiteCache(t)

	require.NoError(t, store.Set("k", []byte("old"), 1, 100))
	require.NoError(t, store.Set("k", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

// TestCacheStoreMiss returns sql.ErrNoRows for unknown keys.
func TestCacheStoreMiss(t *testing.T) {
	store := newSQLiteCache(t)

	_, _, _, err := store.Get("never-stored")

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

// TestCacheStoreNoneBackend verifies the disabled store is a silent no-op.
func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore("feature_cache_test", schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Set("k", []byte("v"), 1, 1))
	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

// TestCacheStoreStatus verifies entry counts and timestamp bounds.
func TestCacheStoreStatus(t *testing.T) {
	store := newSQLiteCache(t)

	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 300))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(300), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
}

// TestValidateTableName rejects identifiers that could carry injection.
func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("feature_cache"))
	assert.NoError(t, validateTableName("_tmp2"))
	assert.Error(t, validateTableName("drop table;--"))
	assert.Error(t, validateTableName("2cache"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName(`cache"name`))
}

// TestQuoteTableName quotes per dialect.
func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}

// TestNewCacheStoreRejectsBadTableName verifies validation happens before any
// connection attempt.
func TestNewCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad name", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

// TestNewCacheStoreUnsupportedBackend rejects unknown backends.
func TestNewCacheStoreUnsupportedBackend(t *testing.T) {
	_, err := NewCacheStore("t", schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
