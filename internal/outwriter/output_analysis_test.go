package outwriter

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/archlens/archlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleResult is a corrected-but-not-trusted classification outcome.
func sampleResult() schema.CorrectedResult {
	return schema.CorrectedResult{
		Predicted:  schema.MVCArch,
		Corrected:  schema.CleanArch,
		Confidence: 0.55,
		Probabilities: map[schema.ArchLabel]float64{
			schema.MVCArch:     0.55,
			schema.CleanArch:   0.30,
			schema.LayeredArch: 0.15,
		},
		Biases: schema.BiasScores{Controller: 2, Clean: 17, Layered: 1},
	}
}

// TestWriteAnalysisJSON verifies the JSON payload carries result, outcome and
// the full feature vector.
func TestWriteAnalysisJSON(t *testing.T) {
	cfg, path := outputTo(t, schema.JSONOut)
	fv := schema.NewFeatureVector()
	fv[schema.KeyLOC] = 500

	require.NoError(t, WriteAnalysis(sampleResult(), fv, cfg, time.Second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Result     string               `json:"result"`
		Predicted  schema.ArchLabel     `json:"predicted"`
		Corrected  schema.ArchLabel     `json:"corrected"`
		Confidence float64              `json:"confidence"`
		Features   schema.FeatureVector `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Adjusted", decoded.Result)
	assert.Equal(t, schema.MVCArch, decoded.Predicted)
	assert.Equal(t, schema.CleanArch, decoded.Corrected)
	assert.Equal(t, 500, decoded.Features.Get(schema.KeyLOC))
	assert.Len(t, decoded.Features, len(schema.FeatureKeys))
}

// TestWriteAnalysisCSV verifies the single-row CSV shape.
func TestWriteAnalysisCSV(t *testing.T) {
	cfg, path := outputTo(t, schema.CSVOut)

	require.NoError(t, WriteAnalysis(sampleResult(), schema.NewFeatureVector(), cfg, time.Second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "architecture,predicted,confidence,result,controller_bias,clean_bias,layered_bias", lines[0])
	assert.Equal(t, "clean,mvc,0.550,Adjusted,2,17,1", lines[1])
}

// TestWriteAnalysisTable spot-checks the text rendering.
func TestWriteAnalysisTable(t *testing.T) {
	cfg, path := outputTo(t, schema.TextOut)
	cfg.Workers = 4
	cfg.CacheBackend = schema.SQLiteBackend
	fv := schema.NewFeatureVector()
	fv[schema.KeyTotalJavaFiles] = 12
	fv[schema.KeyClassCount] = 20
	fv[schema.KeyLOC] = 900

	require.NoError(t, WriteAnalysis(sampleResult(), fv, cfg, time.Second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "Analyzed 12 files (20 classes, 900 LOC)")
	assert.Contains(t, out, "Cache backend: sqlite")
}

// TestWriteAnalysisParquetRejected verifies parquet is not an analyze format.
func TestWriteAnalysisParquetRejected(t *testing.T) {
	cfg, _ := outputTo(t, schema.ParquetOut)

	err := WriteAnalysis(sampleResult(), schema.NewFeatureVector(), cfg, time.Second)

	require.Error(t, err)
}

// TestWriteUnknownArchitecture covers the degraded-run output per format.
func TestWriteUnknownArchitecture(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		cfg, path := outputTo(t, schema.JSONOut)
		require.NoError(t, WriteUnknownArchitecture(cfg, time.Second))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var decoded map[string]string
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, "unknown", decoded["architecture"])
		assert.Equal(t, "classifier unavailable", decoded["reason"])
	})

	t.Run("text", func(t *testing.T) {
		cfg, path := outputTo(t, schema.TextOut)
		require.NoError(t, WriteUnknownArchitecture(cfg, time.Second))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "Architecture: unknown (classifier unavailable)")
	})
}

// TestWriteFeaturesJSON verifies the raw vector is the JSON payload.
func TestWriteFeaturesJSON(t *testing.T) {
	cfg, path := outputTo(t, schema.JSONOut)
	fv := schema.NewFeatureVector()
	fv[schema.KeyController] = 3

	require.NoError(t, WriteFeatures(fv, cfg, time.Second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded schema.FeatureVector
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 3, decoded.Get(schema.KeyController))
	assert.Len(t, decoded, len(schema.FeatureKeys))
}

// TestWriteFeaturesCSV verifies rows follow the canonical key order.
func TestWriteFeaturesCSV(t *testing.T) {
	cfg, path := outputTo(t, schema.CSVOut)
	fv := schema.NewFeatureVector()
	fv[schema.KeyClassCount] = 5

	require.NoError(t, WriteFeatures(fv, cfg, time.Second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, len(schema.FeatureKeys)+1)
	assert.Equal(t, "feature,value", lines[0])
	// Rows follow schema.FeatureKeys order: class_count is the first key.
	assert.Equal(t, schema.KeyClassCount+",5", lines[1])
}
