package iocache

import (
	"time"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetFeatureStore implements the CacheManager interface.
func (m *MockCacheManager) GetFeatureStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetAnalysisStore implements the CacheManager interface.
func (m *MockCacheManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	return args.Get(0).([]byte), args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginRun(repoPath string, startedAt time.Time) (int64, error) {
	args := m.Called(repoPath, startedAt)
	return args.Get(0).(int64), args.Error(1)
}

// FinishRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) FinishRun(runID int64, finishedAt time.Time, rec schema.AnalysisRecord) error {
	args := m.Called(runID, finishedAt, rec)
	return args.Error(0)
}

// ListRecords implements the AnalysisStore interface.
func (m *MockAnalysisStore) ListRecords(limit int) ([]schema.AnalysisRecord, error) {
	args := m.Called(limit)
	recs, _ := args.Get(0).([]schema.AnalysisRecord)
	return recs, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}
