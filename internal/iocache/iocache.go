// Package iocache is for caching extraction results and tracking
// classification runs across archlens invocations.
package iocache

import (
	"sync"

	"github.com/archlens/archlens/internal/contract"
)

// CacheStoreManager manages the feature cache and analysis store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	features     contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetFeatureStore returns the feature-vector CacheStore.
func (mgr *CacheStoreManager) GetFeatureStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.features
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
