// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/archlens/archlens/schema"
)

// Predictor is the external architecture classifier. It is a black box:
// a feature vector goes in, a label with confidence comes out. Implementations
// must fail with classifier.ErrClassifierUnavailable semantics rather than
// invent a label.
type Predictor interface {
	Predict(ctx context.Context, features schema.FeatureVector) (schema.ClassificationResult, error)
}

// SourceWalker produces the traversable source tree the extractor consumes.
// This keeps the core logic testable without a real filesystem.
type SourceWalker interface {
	// Walk returns one SourceUnit per readable Java compilation unit under
	// root. Unreadable or malformed units are skipped, never fatal.
	Walk(ctx context.Context, root string) ([]schema.SourceUnit, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetFeatureStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for feature-vector cache storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking classification runs.
type AnalysisStore interface {
	// BeginRun creates a new analysis run and returns its unique ID.
	BeginRun(repoPath string, startedAt time.Time) (int64, error)

	// FinishRun stores the outcome for a previously begun run.
	FinishRun(runID int64, finishedAt time.Time, rec schema.AnalysisRecord) error

	// ListRecords returns the most recent stored records, newest first.
	ListRecords(limit int) ([]schema.AnalysisRecord, error)

	// GetStatus returns status information about the analysis store.
	GetStatus() (schema.AnalysisStatus, error)

	// Close closes the underlying connection.
	Close() error
}
