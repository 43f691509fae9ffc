package schema

// Custom string types for type safety.
type (
	// ArchLabel represents an architecture pattern label.
	ArchLabel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// Severity represents how serious a detected violation is.
	Severity string

	// DirectionStatus describes whether a unit's cross-layer dependencies
	// point in the direction its architecture expects.
	DirectionStatus string
)

// All architecture labels the classifier can produce.
const (
	MVCArch     ArchLabel = "mvc"
	CleanArch   ArchLabel = "clean"
	LayeredArch ArchLabel = "layered"

	// UnknownArch is never produced by the pipeline itself; it is the
	// display value callers fall back to when the classifier is unavailable.
	UnknownArch ArchLabel = "unknown"
)

// Confidence thresholds for the heuristic correction layer.
const (
	// ConfidenceTrust is the floor above which the classifier's prediction
	// is returned unchanged.
	ConfidenceTrust = 0.75

	// ConfidenceOverride is the floor below which the strongest aggregate
	// bias overrides whatever the per-label rule cascade produced.
	ConfidenceOverride = 0.60
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All violation severities, weakest first.
const (
	LowSeverity      Severity = "low"
	MediumSeverity   Severity = "medium"
	HighSeverity     Severity = "high"
	CriticalSeverity Severity = "critical"
)

// All dependency direction statuses.
const (
	CorrectDirection   DirectionStatus = "correct"
	SkipLayerDirection DirectionStatus = "skip_layer"
	ReversedDirection  DirectionStatus = "reversed"
	RuleViolation      DirectionStatus = "dependency_rule_violation"
	UnknownDirection   DirectionStatus = "unknown"
)

// AllArchLabels lists the labels the classifier may return.
var AllArchLabels = []ArchLabel{MVCArch, CleanArch, LayeredArch}

// ValidArchLabels lists all valid classifier labels.
var ValidArchLabels = map[ArchLabel]struct{}{
	MVCArch:     {},
	CleanArch:   {},
	LayeredArch: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// severityRank orders severities for threshold comparisons.
var severityRank = map[Severity]int{
	LowSeverity:      0,
	MediumSeverity:   1,
	HighSeverity:     2,
	CriticalSeverity: 3,
}

// AtLeast reports whether s is at least as severe as floor.
func (s Severity) AtLeast(floor Severity) bool {
	return severityRank[s] >= severityRank[floor]
}
