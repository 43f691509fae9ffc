package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/archlens/archlens/internal/classifier"
	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/outwriter"
	"github.com/archlens/archlens/schema"
	"github.com/google/uuid"
)

// AnalysisOutput bundles everything one classification run produces.
type AnalysisOutput struct {
	Features schema.FeatureVector
	Result   schema.CorrectedResult
}

// GetAnalysisResults runs the full pipeline for one tree: walk, extract
// (with feature caching), classify, correct, and record the run. Classifier
// failures are returned unchanged so callers can distinguish them.
func GetAnalysisResults(ctx context.Context, cfg *contract.Config, walker contract.SourceWalker, predictor contract.Predictor, mgr contract.CacheManager) (*AnalysisOutput, error) {
	if !headerSuppressed(ctx) {
		outwriter.LogAnalyzeHeader(cfg)
	}

	fv, _, err := getFeatures(ctx, cfg, walker, mgr)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	res, err := classify(ctx, fv, predictor)
	if err != nil {
		return nil, err
	}

	recordRun(mgr, cfg.RepoPath, startedAt, fv, res)

	return &AnalysisOutput{Features: fv, Result: res}, nil
}

// classify calls the external predictor and applies the heuristic layer.
func classify(ctx context.Context, fv schema.FeatureVector, predictor contract.Predictor) (schema.CorrectedResult, error) {
	predicted, err := predictor.Predict(ctx, fv)
	if err != nil {
		return schema.CorrectedResult{}, err
	}
	return Correct(fv, predicted), nil
}

// getFeatures returns the tree's feature vector, from cache when possible,
// along with the source index when a fresh extraction ran (nil on cache hit).
func getFeatures(ctx context.Context, cfg *contract.Config, walker contract.SourceWalker, mgr contract.CacheManager) (schema.FeatureVector, *SourceIndex, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetFeatureStore()
	}

	if fv, ok := loadCachedFeatures(store, cfg); ok {
		return fv, nil, nil
	}

	units, err := walker.Walk(ctx, cfg.RepoPath)
	if err != nil {
		return nil, nil, fmt.Errorf("walking source tree: %w", err)
	}
	fv, idx := ExtractWithIndex(units)
	storeCachedFeatures(store, cfg, fv)
	return fv, idx, nil
}

// recordRun best-effort persists a finished classification to the analysis
// store. Persistence problems degrade to warnings; they never fail a run.
func recordRun(mgr contract.CacheManager, repoPath string, startedAt time.Time, fv schema.FeatureVector, res schema.CorrectedResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}
	runID, err := store.BeginRun(repoPath, startedAt)
	if err != nil {
		contract.LogWarn("failed to begin analysis run", err)
		return
	}
	featuresJSON := outwriter.MarshalFeatures(fv)
	rec := schema.AnalysisRecord{
		RunID:        runID,
		ExternalID:   uuid.NewString(),
		RepoPath:     repoPath,
		StartedAt:    startedAt,
		Predicted:    res.Predicted,
		Corrected:    res.Corrected,
		Confidence:   res.Confidence,
		FeaturesJSON: featuresJSON,
	}
	if err := store.FinishRun(runID, time.Now(), rec); err != nil {
		contract.LogWarn("failed to finish analysis run", err)
	}
}

// ExecuteAnalyze runs the pipeline and prints the result. When the
// classifier is unreachable it reports the architecture as unknown instead
// of failing the whole command; every other error propagates.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, walker contract.SourceWalker, predictor contract.Predictor, mgr contract.CacheManager) error {
	start := time.Now()
	output, err := GetAnalysisResults(ctx, cfg, walker, predictor, mgr)
	if err != nil {
		if errors.Is(err, classifier.ErrClassifierUnavailable) {
			contract.LogWarn("classification skipped", err)
			return outwriter.WriteUnknownArchitecture(cfg, time.Since(start))
		}
		return err
	}
	return outwriter.WriteAnalysis(output.Result, output.Features, cfg, time.Since(start))
}

// ExecuteFeatures extracts and prints the feature vector without calling
// the classifier.
func ExecuteFeatures(ctx context.Context, cfg *contract.Config, walker contract.SourceWalker, mgr contract.CacheManager) error {
	start := time.Now()
	if !headerSuppressed(ctx) {
		outwriter.LogAnalyzeHeader(cfg)
	}
	fv, _, err := getFeatures(ctx, cfg, walker, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteFeatures(fv, cfg, time.Since(start))
}

// GetViolationReport walks the tree and runs the dependency analysis. The
// architecture comes from the classifier when it is reachable; otherwise the
// strongest aggregate bias decides, with a warning, since the violation
// rules need some architecture to judge against.
func GetViolationReport(ctx context.Context, cfg *contract.Config, walker contract.SourceWalker, predictor contract.Predictor) (schema.ViolationReport, error) {
	units, err := walker.Walk(ctx, cfg.RepoPath)
	if err != nil {
		return schema.ViolationReport{}, fmt.Errorf("walking source tree: %w", err)
	}
	fv, idx := ExtractWithIndex(units)

	arch := schema.UnknownArch
	res, err := classify(ctx, fv, predictor)
	switch {
	case err == nil:
		arch = res.Corrected
	case errors.Is(err, classifier.ErrClassifierUnavailable):
		arch = HeuristicLabel(fv)
		contract.LogWarn(fmt.Sprintf("classifier unreachable, assuming %q architecture", arch), err)
	default:
		return schema.ViolationReport{}, err
	}

	return AnalyzeViolations(units, idx, arch), nil
}

// HeuristicLabel picks an architecture from the aggregate biases alone,
// defaulting to layered, the most common Spring Boot arrangement.
func HeuristicLabel(fv schema.FeatureVector) schema.ArchLabel {
	if winner, ok := strictArgmax(buildRuleContext(fv)); ok {
		return winner
	}
	return schema.LayeredArch
}

// ExecuteViolations runs the dependency analysis and prints the report.
func ExecuteViolations(ctx context.Context, cfg *contract.Config, walker contract.SourceWalker, predictor contract.Predictor) error {
	start := time.Now()
	if !headerSuppressed(ctx) {
		outwriter.LogAnalyzeHeader(cfg)
	}
	report, err := GetViolationReport(ctx, cfg, walker, predictor)
	if err != nil {
		return err
	}
	return outwriter.WriteViolations(report, cfg, time.Since(start))
}

// ExecuteCheck runs the dependency analysis as a CI/CD gate: it exits
// non-zero when any unit carries a violation at or above the configured
// severity floor.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, walker contract.SourceWalker, predictor contract.Predictor) error {
	start := time.Now()
	report, err := GetViolationReport(ctx, cfg, walker, predictor)
	if err != nil {
		return err
	}

	flagged := report.Flagged(cfg.SeverityFloor)
	if err := outwriter.WriteCheck(report, flagged, cfg, time.Since(start)); err != nil {
		return err
	}
	if len(flagged) > 0 {
		fmt.Printf("%d unit(s) at or above %s severity\n", len(flagged), cfg.SeverityFloor)
		os.Exit(1)
	}
	return nil
}
