package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"
)

// FeatureCacheVersion invalidates stored vectors when the extraction logic
// or canonical schema changes.
const FeatureCacheVersion = 1

// featureCacheKey fingerprints one extraction: the tree path, the walk
// configuration (excludes and path filter change which units are seen), and
// every Java file's relative path, size and modification time. Cheap to
// compute relative to a full extraction, and any edit, rename or
// configuration change produces a different key.
func featureCacheKey(cfg *contract.Config) string {
	var hashSrc strings.Builder
	fmt.Fprintf(&hashSrc, "%s|%s|%s", cfg.RepoPath, cfg.PathFilter, strings.Join(cfg.Excludes, ","))
	_ = filepath.WalkDir(cfg.RepoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".java") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(cfg.RepoPath, path)
		if err != nil {
			rel = path
		}
		fmt.Fprintf(&hashSrc, "|%s|%d|%d", filepath.ToSlash(rel), info.Size(), info.ModTime().UnixNano())
		return nil
	})

	sum := sha256.Sum256([]byte(hashSrc.String()))
	return fmt.Sprintf("features:%x", sum[:16])
}

// loadCachedFeatures returns a previously extracted vector for the tree, or
// false when the cache misses, is stale, or holds an off-schema vector.
func loadCachedFeatures(store contract.CacheStore, cfg *contract.Config) (schema.FeatureVector, bool) {
	if store == nil {
		return nil, false
	}
	raw, version, _, err := store.Get(featureCacheKey(cfg))
	if err != nil || raw == nil || version != FeatureCacheVersion {
		return nil, false
	}
	var fv schema.FeatureVector
	if err := json.Unmarshal(raw, &fv); err != nil {
		return nil, false
	}
	if err := fv.Validate(); err != nil {
		return nil, false
	}
	return fv, true
}

// storeCachedFeatures best-effort persists a freshly extracted vector.
func storeCachedFeatures(store contract.CacheStore, cfg *contract.Config, fv schema.FeatureVector) {
	if store == nil {
		return
	}
	raw, err := json.Marshal(fv)
	if err != nil {
		return
	}
	if err := store.Set(featureCacheKey(cfg), raw, FeatureCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("failed to cache features", err)
	}
}
