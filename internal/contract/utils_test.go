package contract

import (
	"path/filepath"
	"testing"

	"github.com/archlens/archlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShouldIgnore pins the three pattern styles: fragments, suffixes, globs.
func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		expected bool
	}{
		{"directory fragment", "target/classes/App.java", []string{"target/"}, true},
		{"fragment mid-path", "src/target/App.java", []string{"target/"}, true},
		{"no match", "src/main/java/App.java", []string{"target/"}, false},
		{"suffix match", "src/main/java/OrderTest.java", []string{"Test.java"}, true},
		{"dot suffix", "gen/model.pb.java", []string{".pb.java"}, true},
		{"glob on base name", "deep/nested/GenCode_.java", []string{"*Code_.java"}, true},
		{"glob misses directory", "generated/App.java", []string{"generated/*"}, false},
		{"empty patterns skipped", "App.java", []string{"", "  "}, false},
		{"nil excludes", "App.java", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

// TestGetPlainSeverityLabel covers all severities.
func TestGetPlainSeverityLabel(t *testing.T) {
	assert.Equal(t, "Critical", GetPlainSeverityLabel(schema.CriticalSeverity))
	assert.Equal(t, "High", GetPlainSeverityLabel(schema.HighSeverity))
	assert.Equal(t, "Medium", GetPlainSeverityLabel(schema.MediumSeverity))
	assert.Equal(t, "Low", GetPlainSeverityLabel(schema.LowSeverity))
}

// TestGetPlainResultLabel covers the trust/adjust/keep triad.
func TestGetPlainResultLabel(t *testing.T) {
	trusted := schema.CorrectedResult{Predicted: schema.MVCArch, Corrected: schema.MVCArch, Trusted: true}
	adjusted := schema.CorrectedResult{Predicted: schema.MVCArch, Corrected: schema.CleanArch}
	kept := schema.CorrectedResult{Predicted: schema.MVCArch, Corrected: schema.MVCArch}

	assert.Equal(t, TrustedValue, GetPlainResultLabel(trusted))
	assert.Equal(t, AdjustedValue, GetPlainResultLabel(adjusted))
	assert.Equal(t, KeptValue, GetPlainResultLabel(kept))
}

// TestGetColorResultLabel verifies the colored variants carry the same text.
func TestGetColorResultLabel(t *testing.T) {
	trusted := schema.CorrectedResult{Trusted: true}
	assert.Contains(t, GetColorResultLabel(trusted), TrustedValue)
}

// TestSelectOutputFile returns stdout for the empty path and creates files
// otherwise.
func TestSelectOutputFile(t *testing.T) {
	t.Run("stdout fallback", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, "stdout", f.Name()[len(f.Name())-6:])
	})

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, path, f.Name())
	})
}

// TestDBFilePaths verifies the home directory layout of the two stores.
func TestDBFilePaths(t *testing.T) {
	cache := GetCacheDBFilePath()
	analysis := GetAnalysisDBFilePath()

	assert.NotEqual(t, cache, analysis)
	assert.Contains(t, cache, ".archlens_cache.db")
	assert.Contains(t, analysis, ".archlens_analysis.db")
}
