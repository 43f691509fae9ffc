package core

import (
	"fmt"
	"strings"

	"github.com/archlens/archlens/schema"
)

// AnalyzeViolations runs the architecture-aware dependency analysis over an
// extracted tree. Unlike the feature schema's edge counters, this analysis
// keeps true source-layer attribution: each unit's references are charged to
// the unit's own layer.
func AnalyzeViolations(units []schema.SourceUnit, idx *SourceIndex, arch schema.ArchLabel) schema.ViolationReport {
	report := schema.ViolationReport{Architecture: arch}

	for _, unit := range units {
		layer := unitLayer(unit, idx)
		deps := unitDeps(unit.Path, idx)
		coupled := coupledConstructs(unit.Constructs)

		// Units with no layer signal, no outgoing references and no
		// construction smells carry no architectural information.
		if layer == schema.UnknownLayer && len(deps) == 0 && len(coupled) == 0 {
			continue
		}

		report.Units = append(report.Units, schema.UnitReport{
			Path:       unit.Path,
			Layer:      layer,
			Deps:       deps,
			Direction:  dependencyDirection(layer, deps, arch),
			Violations: detectViolations(layer, deps, coupled, arch),
		})
	}

	return report
}

// unitLayer resolves a unit's layer: stereotype annotations on any declared
// class win, the path-inferred layer is the fallback.
func unitLayer(unit schema.SourceUnit, idx *SourceIndex) schema.Layer {
	for _, class := range unit.Classes {
		if layer, ok := layerFromAnnotations(class.Annotations); ok {
			return layer
		}
	}
	return idx.UnitLayers[unit.Path]
}

// unitDeps tallies the unit's resolved references per target layer.
func unitDeps(path string, idx *SourceIndex) map[schema.Layer]int {
	refs := idx.UnitRefs[path]
	if len(refs) == 0 {
		return nil
	}
	deps := make(map[schema.Layer]int)
	for _, target := range refs {
		layer, ok := idx.ClassLayers[target]
		if !ok {
			layer = schema.UnknownLayer
		}
		deps[layer]++
	}
	return deps
}

// dependencyDirection judges whether the unit's outgoing references point
// the way its architecture expects.
func dependencyDirection(layer schema.Layer, deps map[schema.Layer]int, arch schema.ArchLabel) schema.DirectionStatus {
	switch arch {
	case schema.MVCArch, schema.LayeredArch:
		// Correct flow: controller -> service -> repository -> domain.
		switch layer {
		case schema.ControllerLayer:
			if deps[schema.RepositoryLayer] > 0 || deps[schema.DomainLayer] > 0 {
				return schema.SkipLayerDirection
			}
			if deps[schema.ServiceLayer] > 0 {
				return schema.CorrectDirection
			}
		case schema.ServiceLayer:
			if deps[schema.ControllerLayer] > 0 {
				return schema.ReversedDirection
			}
			return schema.CorrectDirection
		case schema.RepositoryLayer:
			if deps[schema.ServiceLayer] > 0 || deps[schema.ControllerLayer] > 0 {
				return schema.ReversedDirection
			}
			return schema.CorrectDirection
		}

	case schema.CleanArch:
		// Correct flow: outer layers depend inward, never the reverse.
		switch layer {
		case schema.ControllerLayer:
			if deps[schema.UsecaseLayer] > 0 || deps[schema.ServiceLayer] > 0 {
				return schema.CorrectDirection
			}
			if deps[schema.DomainLayer] > 0 || deps[schema.RepositoryLayer] > 0 {
				return schema.RuleViolation
			}
		case schema.ServiceLayer, schema.UsecaseLayer:
			if deps[schema.ControllerLayer] > 0 {
				return schema.ReversedDirection
			}
			if deps[schema.DomainLayer] > 0 {
				return schema.CorrectDirection
			}
		}
	}

	return schema.UnknownDirection
}

// coupledSuffixes mark dependency types that should arrive via injection;
// constructing one directly couples the unit to a concrete implementation.
var coupledSuffixes = []string{"Service", "Repository", "Dao", "Adapter"}

// coupledConstructs filters the unit's construction expressions down to
// dependency-shaped type names.
func coupledConstructs(constructs []string) []string {
	var out []string
	for _, name := range constructs {
		for _, suffix := range coupledSuffixes {
			if strings.HasSuffix(name, suffix) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// detectViolations applies the per-architecture anti-pattern rules, then the
// rules common to every architecture.
func detectViolations(layer schema.Layer, deps map[schema.Layer]int, coupled []string, arch schema.ArchLabel) []schema.Violation {
	var out []schema.Violation

	switch arch {
	case schema.MVCArch, schema.LayeredArch:
		if layer == schema.ControllerLayer && deps[schema.RepositoryLayer] > 0 {
			out = append(out, schema.Violation{
				Kind:     schema.LayerSkip,
				Severity: schema.HighSeverity,
				Detail:   fmt.Sprintf("controller references %d repository class(es) directly, bypassing the service layer", deps[schema.RepositoryLayer]),
			})
		}
		if layer == schema.ServiceLayer && deps[schema.ControllerLayer] > 0 {
			out = append(out, schema.Violation{
				Kind:     schema.ReversedDependency,
				Severity: schema.HighSeverity,
				Detail:   fmt.Sprintf("service references %d controller class(es); dependencies must flow downward", deps[schema.ControllerLayer]),
			})
		}
		if layer == schema.RepositoryLayer && (deps[schema.ServiceLayer] > 0 || deps[schema.ControllerLayer] > 0) {
			out = append(out, schema.Violation{
				Kind:     schema.RepositoryFanIn,
				Severity: schema.HighSeverity,
				Detail:   "repository references upper-layer classes; dependencies must flow downward",
			})
		}

	case schema.CleanArch:
		if layer == schema.ControllerLayer && (deps[schema.DomainLayer] > 0 || deps[schema.RepositoryLayer] > 0) {
			out = append(out, schema.Violation{
				Kind:     schema.OuterDependsInner,
				Severity: schema.CriticalSeverity,
				Detail:   "interface adapter references entity or infrastructure details directly",
			})
		}
		if layer == schema.ServiceLayer && deps[schema.RepositoryLayer] > 0 && deps[schema.UsecaseLayer] == 0 {
			out = append(out, schema.Violation{
				Kind:     schema.MissingMediation,
				Severity: schema.HighSeverity,
				Detail:   "service touches repositories without a use-case boundary in between",
			})
		}
	}

	if len(coupled) > 0 {
		out = append(out, schema.Violation{
			Kind:     schema.TightCoupling,
			Severity: schema.MediumSeverity,
			Detail:   fmt.Sprintf("dependency class(es) constructed with new instead of injected: %s", strings.Join(coupled, ", ")),
		})
	}

	return out
}
