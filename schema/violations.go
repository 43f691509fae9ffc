package schema

// ViolationKind identifies one architecture anti-pattern.
type ViolationKind string

// All violation kinds detected by the dependency analysis.
const (
	LayerSkip          ViolationKind = "layer_skip"
	ReversedDependency ViolationKind = "reversed_dependency"
	OuterDependsInner  ViolationKind = "outer_depends_on_inner"
	MissingMediation   ViolationKind = "missing_usecase_mediation"
	RepositoryFanIn    ViolationKind = "repository_reverse_fan_in"
	TightCoupling      ViolationKind = "tight_coupling"
)

// Violation is one detected anti-pattern in one source unit.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Severity Severity      `json:"severity"`
	Detail   string        `json:"detail"`
}

// UnitReport is the per-unit outcome of the dependency analysis.
type UnitReport struct {
	Path       string          `json:"path"`
	Layer      Layer           `json:"layer"`
	Deps       map[Layer]int   `json:"deps"`
	Direction  DirectionStatus `json:"direction"`
	Violations []Violation     `json:"violations,omitempty"`
}

// ViolationReport aggregates the dependency analysis over a whole tree.
type ViolationReport struct {
	Architecture ArchLabel    `json:"architecture"`
	Units        []UnitReport `json:"units"`
}

// Flagged returns the units carrying at least one violation at or above floor.
func (r ViolationReport) Flagged(floor Severity) []UnitReport {
	var out []UnitReport
	for _, u := range r.Units {
		for _, v := range u.Violations {
			if v.Severity.AtLeast(floor) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

// DatasetRow is one labeled sample for ML training: a repository's feature
// summary plus its corrected architecture label.
type DatasetRow struct {
	Repo             string    `json:"repo"`
	Label            ArchLabel `json:"label"`
	Predicted        ArchLabel `json:"predicted"`
	Confidence       float64   `json:"confidence"`
	TotalJavaFiles   int       `json:"total_java_files"`
	ClassCount       int       `json:"class_count"`
	LOC              int       `json:"loc"`
	ControllerLayer  int       `json:"controller_layer"`
	ServiceLayer     int       `json:"service_layer"`
	RepositoryLayer  int       `json:"repository_layer"`
	DomainLayer      int       `json:"domain_layer"`
	UsecaseLayer     int       `json:"usecase_layer"`
	UniqueLayersUsed int       `json:"unique_layers_used"`
	FeaturesJSON     string    `json:"features_json"`
}

// NewDatasetRow promotes the columns ML training filters on and keeps the
// full vector as JSON alongside them.
func NewDatasetRow(repo string, fv FeatureVector, res CorrectedResult, featuresJSON string) DatasetRow {
	return DatasetRow{
		Repo:             repo,
		Label:            res.Corrected,
		Predicted:        res.Predicted,
		Confidence:       res.Confidence,
		TotalJavaFiles:   fv.Get(KeyTotalJavaFiles),
		ClassCount:       fv.Get(KeyClassCount),
		LOC:              fv.Get(KeyLOC),
		ControllerLayer:  fv.Get(ControllerLayer.Key()),
		ServiceLayer:     fv.Get(ServiceLayer.Key()),
		RepositoryLayer:  fv.Get(RepositoryLayer.Key()),
		DomainLayer:      fv.Get(DomainLayer.Key()),
		UsecaseLayer:     fv.Get(UsecaseLayer.Key()),
		UniqueLayersUsed: fv.Get(KeyUniqueLayersUsed),
		FeaturesJSON:     featuresJSON,
	}
}
