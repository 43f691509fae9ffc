// Package core has core logic for feature extraction, classification
// correction and dependency analysis.
package core

import (
	"path/filepath"
	"strings"

	"github.com/archlens/archlens/schema"
)

// pendingRef is a call-site reference collected in the first pass whose
// target layer can only be resolved once every class has been registered.
type pendingRef struct {
	unitPath string
	target   string
}

// SourceIndex holds the lookup state built during extraction. The dependency
// analysis reuses it so the tree is only walked once.
type SourceIndex struct {
	// ClassLayers maps class simple names to their inferred layer.
	ClassLayers map[string]schema.Layer

	// UnitLayers maps unit paths to their path-inferred layer.
	UnitLayers map[string]schema.Layer

	// UnitRefs maps unit paths to the resolved call target class names
	// found in that unit's method bodies.
	UnitRefs map[string][]string
}

// Extract walks the units once and produces a complete feature vector over
// the canonical schema. It is a pure function of its input: no caching, no
// shared state across invocations. An empty tree yields the zero vector.
func Extract(units []schema.SourceUnit) schema.FeatureVector {
	fv, _ := ExtractWithIndex(units)
	return fv
}

// ExtractWithIndex is Extract plus the layer lookup state, for callers that
// also run the dependency analysis.
func ExtractWithIndex(units []schema.SourceUnit) (schema.FeatureVector, *SourceIndex) {
	fv := schema.NewFeatureVector()
	idx := &SourceIndex{
		ClassLayers: make(map[string]schema.Layer),
		UnitLayers:  make(map[string]schema.Layer),
		UnitRefs:    make(map[string][]string),
	}
	var pending []pendingRef

	// Pass one: tally counters, assign layers, collect pending references.
	for _, unit := range units {
		fv.Add(schema.KeyTotalJavaFiles, 1)
		fv.Add(schema.KeyLOC, unit.LineCount)
		fv.Add(schema.KeyMethodCount, unit.MethodCount())
		fv.Add(schema.KeyClassCount, len(unit.Classes))
		for _, c := range unit.Classes {
			if c.IsInterface {
				fv.Add(schema.KeyInterfaceCount, 1)
			}
		}

		tallyFileNameHints(fv, unit.Path)
		tallyImportHints(fv, unit.Imports)

		pathLayer := inferPathLayer(unit.Path, unit.Package)
		fv.Add(pathLayer.Key(), 1)
		idx.UnitLayers[unit.Path] = pathLayer

		for _, class := range unit.Classes {
			tallyAnnotations(fv, class.Annotations)

			layer, ok := layerFromAnnotations(class.Annotations)
			if !ok {
				// No stereotype annotation: fall back to the package keywords.
				layer = inferLayerFromText(unit.Package)
			}
			idx.ClassLayers[class.Name] = layer

			if isDTOLikeName(class.Name) {
				fv.Add(schema.KeyDTOLikeNames, 1)
			}

			for _, method := range class.Methods {
				for _, call := range method.Calls {
					if strings.HasSuffix(call.Receiver, "Service") {
						fv.Add(schema.KeyServiceCallCount, 1)
					}
					if call.Target != "" {
						pending = append(pending, pendingRef{unitPath: unit.Path, target: call.Target})
						idx.UnitRefs[unit.Path] = append(idx.UnitRefs[unit.Path], call.Target)
					}
				}
			}
		}
	}

	// Pass two: resolve pending references against the completed lookup
	// table. The calling context was discarded at collection time, so every
	// resolved edge is attributed to the unknown layer.
	for _, ref := range pending {
		target, ok := idx.ClassLayers[ref.target]
		if !ok {
			target = schema.UnknownLayer
		}
		fv.Add(schema.EdgeKey(schema.UnknownLayer, target), 1)
	}

	fv[schema.KeyUniqueLayersUsed] = countUniqueLayers(idx.ClassLayers)

	return fv, idx
}

// countUniqueLayers counts distinct non-unknown layers across all classes.
func countUniqueLayers(classLayers map[string]schema.Layer) int {
	seen := make(map[schema.Layer]struct{})
	for _, l := range classLayers {
		if l != schema.UnknownLayer {
			seen[l] = struct{}{}
		}
	}
	return len(seen)
}

// dtoSuffixes mark data-carrier classes by naming convention.
var dtoSuffixes = []string{"dto", "request", "response", "command", "query"}

func isDTOLikeName(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range dtoSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// tallyFileNameHints inspects the file name stem for naming conventions.
func tallyFileNameHints(fv schema.FeatureVector, path string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lower := strings.ToLower(stem)
	if strings.Contains(lower, "controller") {
		fv.Add(schema.KeyFileNamedController, 1)
	}
	if strings.Contains(lower, "service") {
		fv.Add(schema.KeyFileNamedService, 1)
	}
	if strings.Contains(lower, "repository") {
		fv.Add(schema.KeyFileNamedRepository, 1)
	}
	if isDTOLikeName(stem) {
		fv.Add(schema.KeyDTOLikeNames, 1)
	}
}

// tallyImportHints classifies import roots. Counts are per statement, not
// deduplicated per file.
func tallyImportHints(fv schema.FeatureVector, imports []string) {
	for _, imp := range imports {
		switch {
		case strings.HasPrefix(imp, "org.springframework.web"):
			fv.Add(schema.KeySpringWeb, 1)
		case strings.HasPrefix(imp, "org.springframework.stereotype"):
			fv.Add(schema.KeySpringStereotype, 1)
		case strings.HasPrefix(imp, "org.springframework.data"):
			fv.Add(schema.KeySpringData, 1)
		case strings.HasPrefix(imp, "javax.persistence"), strings.HasPrefix(imp, "jakarta.persistence"):
			fv.Add(schema.KeyJPA, 1)
		}
	}
}

// tallyAnnotations counts stereotype annotations by suffix match.
func tallyAnnotations(fv schema.FeatureVector, annotations []string) {
	for _, a := range annotations {
		switch {
		case strings.HasSuffix(a, "Controller"): // includes RestController
			fv.Add(schema.KeyController, 1)
		case strings.HasSuffix(a, "Service"):
			fv.Add(schema.KeyService, 1)
		case strings.HasSuffix(a, "Repository"):
			fv.Add(schema.KeyRepository, 1)
		case strings.HasSuffix(a, "Entity"):
			fv.Add(schema.KeyEntity, 1)
		case strings.HasSuffix(a, "Component"):
			fv.Add(schema.KeyComponent, 1)
		case strings.HasSuffix(a, "Configuration"):
			fv.Add(schema.KeyConfig, 1)
		}
	}
}

// layerFromAnnotations infers a class layer from its stereotype annotations.
// Annotations win over path keywords because they are explicit declarations.
func layerFromAnnotations(annotations []string) (schema.Layer, bool) {
	for _, a := range annotations {
		switch {
		case strings.HasSuffix(a, "Controller"): // includes RestController
			return schema.ControllerLayer, true
		case strings.HasSuffix(a, "Service"):
			return schema.ServiceLayer, true
		case strings.HasSuffix(a, "Repository"):
			return schema.RepositoryLayer, true
		case strings.HasSuffix(a, "Entity"):
			return schema.DomainLayer, true
		}
	}
	return schema.UnknownLayer, false
}

// layerKeywords is the fixed-priority keyword table for path/package layer
// inference. Earlier rows win.
var layerKeywords = []struct {
	layer    schema.Layer
	keywords []string
}{
	{schema.ControllerLayer, []string{"controller", "web"}},
	{schema.ServiceLayer, []string{"service", "application"}},
	{schema.RepositoryLayer, []string{"repository", "infrastructure"}},
	{schema.DomainLayer, []string{"domain", "model"}},
	{schema.UsecaseLayer, []string{"usecase", "interactor"}},
}

// inferLayerFromText assigns a layer by keyword containment.
func inferLayerFromText(text string) schema.Layer {
	lower := strings.ToLower(text)
	for _, row := range layerKeywords {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return row.layer
			}
		}
	}
	return schema.UnknownLayer
}

// inferPathLayer infers a unit's layer from its filesystem path, falling
// back to its package name when the path carries no layer keyword.
func inferPathLayer(path, pkg string) schema.Layer {
	if layer := inferLayerFromText(path); layer != schema.UnknownLayer {
		return layer
	}
	return inferLayerFromText(pkg)
}
