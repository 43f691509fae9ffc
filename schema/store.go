package schema

import "time"

// CacheStatus holds status information about the feature cache store.
type CacheStatus struct {
	Backend         DatabaseBackend
	Connected       bool
	TotalEntries    int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
}

// AnalysisStatus holds status information about the analysis run store.
type AnalysisStatus struct {
	Backend       DatabaseBackend
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TotalRepos    int64
	TableSizes    map[string]int64
}

// AnalysisRecord is one stored classification outcome, as written to and
// read back from the analysis store.
type AnalysisRecord struct {
	RunID        int64
	ExternalID   string // UUID for cross-system correlation
	RepoPath     string
	StartedAt    time.Time
	FinishedAt   time.Time
	Predicted    ArchLabel
	Corrected    ArchLabel
	Confidence   float64
	FeaturesJSON string
}
