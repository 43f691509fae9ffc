package core

import "github.com/archlens/archlens/schema"

// ruleContext carries the aggregate values the correction rules test.
// All values come straight from the feature vector; missing keys are zero.
type ruleContext struct {
	controllers  int // raw @Controller/@RestController count
	services     int // raw @Service count
	repositories int // raw @Repository count
	domain       int // domain_layer count
	usecases     int // usecase_layer count
	uniqueLayers int

	controllerBias int
	cleanBias      int
	layeredBias    int
}

// correctionRule pairs a predicate with the label it forces. Rules within a
// branch run in order and later matches overwrite earlier ones: the cascade
// is a fold with last-write-wins, not a first-match switch.
type correctionRule struct {
	when  func(c ruleContext) bool
	label schema.ArchLabel
}

// correctionRules holds the ordered cascade per predicted label.
var correctionRules = map[schema.ArchLabel][]correctionRule{
	schema.MVCArch: {
		{func(c ruleContext) bool { return c.cleanBias >= 10 && c.uniqueLayers >= 3 }, schema.CleanArch},
		{func(c ruleContext) bool { return c.layeredBias >= 15 && c.services > c.controllers }, schema.LayeredArch},
		{func(c ruleContext) bool { return c.domain >= 5 && c.domain > c.controllers }, schema.CleanArch},
		{func(c ruleContext) bool { return c.usecases > 0 && c.usecases >= c.controllers }, schema.CleanArch},
	},
	schema.CleanArch: {
		{func(c ruleContext) bool { return c.controllerBias >= 10 && c.controllers >= c.services }, schema.MVCArch},
		{func(c ruleContext) bool { return c.domain < 3 && c.controllerBias > c.cleanBias }, schema.MVCArch},
		{func(c ruleContext) bool { return c.repositories > c.services && c.layeredBias > c.cleanBias }, schema.LayeredArch},
	},
	schema.LayeredArch: {
		{func(c ruleContext) bool { return c.cleanBias >= 12 && c.domain > c.repositories }, schema.CleanArch},
		{func(c ruleContext) bool { return c.controllerBias >= 10 && c.controllers > c.services }, schema.MVCArch},
	},
}

// buildRuleContext derives the aggregate bias scores from a feature vector.
func buildRuleContext(fv schema.FeatureVector) ruleContext {
	c := ruleContext{
		controllers:  fv.Get(schema.KeyController),
		services:     fv.Get(schema.KeyService),
		repositories: fv.Get(schema.KeyRepository),
		domain:       fv.Get(schema.DomainLayer.Key()),
		usecases:     fv.Get(schema.UsecaseLayer.Key()),
		uniqueLayers: fv.Get(schema.KeyUniqueLayersUsed),
	}
	c.controllerBias = fv.Get(schema.KeyController) +
		fv.Get(schema.EdgeKey(schema.ControllerLayer, schema.ServiceLayer))
	c.cleanBias = fv.Get(schema.DomainLayer.Key()) +
		fv.Get(schema.UsecaseLayer.Key()) +
		fv.Get(schema.EdgeKey(schema.DomainLayer, schema.ServiceLayer))
	c.layeredBias = fv.Get(schema.EdgeKey(schema.ServiceLayer, schema.RepositoryLayer)) +
		fv.Get(schema.EdgeKey(schema.RepositoryLayer, schema.ServiceLayer))
	return c
}

// Correct applies the heuristic correction layer to a classifier response.
// It is pure and deterministic: identical inputs always yield identical
// outputs. High-confidence predictions pass through untouched; below the
// trust threshold the per-label cascade runs, and below the override
// threshold the strongest aggregate bias has the final word.
func Correct(fv schema.FeatureVector, res schema.ClassificationResult) schema.CorrectedResult {
	c := buildRuleContext(fv)
	out := schema.CorrectedResult{
		Predicted:     res.Predicted,
		Corrected:     res.Predicted,
		Confidence:    res.Confidence,
		Probabilities: res.Probabilities,
		Biases: schema.BiasScores{
			Controller: c.controllerBias,
			Clean:      c.cleanBias,
			Layered:    c.layeredBias,
		},
	}

	if res.Confidence >= schema.ConfidenceTrust {
		out.Trusted = true
		return out
	}

	for _, rule := range correctionRules[res.Predicted] {
		if rule.when(c) {
			out.Corrected = rule.label
		}
	}

	if res.Confidence < schema.ConfidenceOverride {
		if winner, ok := strictArgmax(c); ok {
			out.Corrected = winner
		}
	}

	return out
}

// strictArgmax returns the label of the strictly largest bias. Ties report
// no winner, leaving the cascade result in place.
func strictArgmax(c ruleContext) (schema.ArchLabel, bool) {
	switch {
	case c.cleanBias > c.layeredBias && c.cleanBias > c.controllerBias:
		return schema.CleanArch, true
	case c.layeredBias > c.cleanBias && c.layeredBias > c.controllerBias:
		return schema.LayeredArch, true
	case c.controllerBias > c.cleanBias && c.controllerBias > c.layeredBias:
		return schema.MVCArch, true
	default:
		return "", false
	}
}
