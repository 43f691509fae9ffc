package core

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/archlens/archlens/internal/classifier"
	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/iocache"
	"github.com/archlens/archlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// serviceHeavyUnits is a small tree with an annotated service class.
func serviceHeavyUnits() []schema.SourceUnit {
	return []schema.SourceUnit{
		{
			Path:      "service/OrderService.java",
			Package:   "app.service",
			LineCount: 40,
			Classes: []schema.SourceClass{
				{Name: "OrderService", Annotations: []string{"Service"}},
			},
		},
	}
}

func TestGetAnalysisResults_Success(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockWalker := &contract.MockSourceWalker{}
	mockPredictor := &contract.MockPredictor{}
	mockMgr := &iocache.MockCacheManager{}

	mockMgr.On("GetFeatureStore").Return(nil)
	mockMgr.On("GetAnalysisStore").Return(nil)
	mockWalker.On("Walk", ctx, "/test/repo").Return(serviceHeavyUnits(), nil)
	mockPredictor.On("Predict", ctx, mock.AnythingOfType("schema.FeatureVector")).
		Return(schema.ClassificationResult{Predicted: schema.LayeredArch, Confidence: 0.9}, nil)

	cfg := &contract.Config{RepoPath: "/test/repo", Workers: 1}

	output, err := GetAnalysisResults(ctx, cfg, mockWalker, mockPredictor, mockMgr)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, schema.LayeredArch, output.Result.Corrected)
	assert.True(t, output.Result.Trusted)
	assert.Equal(t, 1, output.Features.Get(schema.KeyTotalJavaFiles))

	mockWalker.AssertExpectations(t)
	mockPredictor.AssertExpectations(t)
	mockMgr.AssertExpectations(t)
}

func TestGetAnalysisResults_ClassifierUnavailable(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockWalker := &contract.MockSourceWalker{}
	mockPredictor := &contract.MockPredictor{}
	mockMgr := &iocache.MockCacheManager{}

	mockMgr.On("GetFeatureStore").Return(nil)
	mockWalker.On("Walk", ctx, "/test/repo").Return(serviceHeavyUnits(), nil)
	mockPredictor.On("Predict", ctx, mock.AnythingOfType("schema.FeatureVector")).
		Return(schema.ClassificationResult{}, classifier.ErrClassifierUnavailable)

	cfg := &contract.Config{RepoPath: "/test/repo", Workers: 1}

	output, err := GetAnalysisResults(ctx, cfg, mockWalker, mockPredictor, mockMgr)

	require.Error(t, err)
	assert.ErrorIs(t, err, classifier.ErrClassifierUnavailable)
	assert.Nil(t, output)

	mockWalker.AssertExpectations(t)
	mockPredictor.AssertExpectations(t)
}

func TestGetAnalysisResults_WalkerError(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockWalker := &contract.MockSourceWalker{}
	mockPredictor := &contract.MockPredictor{}
	mockMgr := &iocache.MockCacheManager{}

	mockMgr.On("GetFeatureStore").Return(nil)
	mockWalker.On("Walk", ctx, "/test/repo").Return(nil, assert.AnError)

	cfg := &contract.Config{RepoPath: "/test/repo", Workers: 1}

	output, err := GetAnalysisResults(ctx, cfg, mockWalker, mockPredictor, mockMgr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "walking source tree")
	assert.Nil(t, output)
}

func TestGetAnalysisResults_RecordsRun(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockWalker := &contract.MockSourceWalker{}
	mockPredictor := &contract.MockPredictor{}
	mockMgr := &iocache.MockCacheManager{}
	mockStore := &iocache.MockAnalysisStore{}

	mockMgr.On("GetFeatureStore").Return(nil)
	mockMgr.On("GetAnalysisStore").Return(mockStore)
	mockWalker.On("Walk", ctx, "/test/repo").Return(serviceHeavyUnits(), nil)
	mockPredictor.On("Predict", ctx, mock.AnythingOfType("schema.FeatureVector")).
		Return(schema.ClassificationResult{Predicted: schema.LayeredArch, Confidence: 0.8}, nil)

	mockStore.On("BeginRun", "/test/repo", mock.AnythingOfType("time.Time")).Return(int64(7), nil)
	mockStore.On("FinishRun", int64(7), mock.AnythingOfType("time.Time"), mock.MatchedBy(func(rec schema.AnalysisRecord) bool {
		return rec.RunID == 7 &&
			rec.RepoPath == "/test/repo" &&
			rec.Predicted == schema.LayeredArch &&
			rec.Corrected == schema.LayeredArch &&
			rec.ExternalID != "" &&
			rec.FeaturesJSON != ""
	})).Return(nil)

	cfg := &contract.Config{RepoPath: "/test/repo", Workers: 1}

	output, err := GetAnalysisResults(ctx, cfg, mockWalker, mockPredictor, mockMgr)

	require.NoError(t, err)
	require.NotNil(t, output)

	mockStore.AssertExpectations(t)
}

func TestGetAnalysisResults_CacheHit(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockPredictor := &contract.MockPredictor{}
	mockMgr := &iocache.MockCacheManager{}
	mockStore := &iocache.MockCacheStore{}

	cached := schema.NewFeatureVector()
	cached[schema.KeyTotalJavaFiles] = 3
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	mockMgr.On("GetFeatureStore").Return(mockStore)
	mockMgr.On("GetAnalysisStore").Return(nil)
	mockStore.On("Get", mock.AnythingOfType("string")).Return(raw, FeatureCacheVersion, int64(0), nil)
	mockPredictor.On("Predict", ctx, mock.AnythingOfType("schema.FeatureVector")).
		Return(schema.ClassificationResult{Predicted: schema.MVCArch, Confidence: 0.9}, nil)

	cfg := &contract.Config{RepoPath: t.TempDir(), Workers: 1}

	// The walker must never run on a cache hit.
	mockWalker := &contract.MockSourceWalker{}

	output, err := GetAnalysisResults(ctx, cfg, mockWalker, mockPredictor, mockMgr)

	require.NoError(t, err)
	assert.Equal(t, 3, output.Features.Get(schema.KeyTotalJavaFiles))
	mockWalker.AssertNotCalled(t, "Walk", mock.Anything, mock.Anything)
	mockStore.AssertExpectations(t)
}

func TestGetViolationReport_HeuristicFallback(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	mockWalker := &contract.MockSourceWalker{}
	mockPredictor := &contract.MockPredictor{}

	mockWalker.On("Walk", ctx, "/test/repo").Return(serviceHeavyUnits(), nil)
	mockPredictor.On("Predict", ctx, mock.AnythingOfType("schema.FeatureVector")).
		Return(schema.ClassificationResult{}, classifier.ErrClassifierUnavailable)

	cfg := &contract.Config{RepoPath: "/test/repo", Workers: 1}

	report, err := GetViolationReport(ctx, cfg, mockWalker, mockPredictor)

	require.NoError(t, err)
	// All-quiet biases: the fallback label defaults to layered.
	assert.Equal(t, schema.LayeredArch, report.Architecture)
}

// TestHeuristicLabel verifies the bias-only labeling used when the
// classifier is unreachable.
func TestHeuristicLabel(t *testing.T) {
	t.Run("clean wins", func(t *testing.T) {
		fv := schema.NewFeatureVector()
		fv[schema.DomainLayer.Key()] = 8
		assert.Equal(t, schema.CleanArch, HeuristicLabel(fv))
	})

	t.Run("tie defaults to layered", func(t *testing.T) {
		assert.Equal(t, schema.LayeredArch, HeuristicLabel(schema.NewFeatureVector()))
	})
}
