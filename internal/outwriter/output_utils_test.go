package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteWithFile writes into a real file and verifies the content lands.
func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote text")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

// TestWriteJSONIndentation verifies the two-space indentation contract.
func TestWriteJSONIndentation(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeJSON(&buf, map[string]int{"loc": 10}))

	assert.Equal(t, "{\n  \"loc\": 10\n}\n", buf.String())
}

// TestWriteCSVWithHeader verifies header-then-rows ordering.
func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer

	err := writeCSVWithHeader(&buf, []string{"feature", "value"}, func(cw *csv.Writer) error {
		return cw.Write([]string{"loc", "42"})
	})
	require.NoError(t, err)

	assert.Equal(t, "feature,value\nloc,42\n", buf.String())
}

// TestMarshalFeatures verifies the cached/exported JSON is the full vector.
func TestMarshalFeatures(t *testing.T) {
	fv := schema.NewFeatureVector()
	fv[schema.KeyLOC] = 7

	out := MarshalFeatures(fv)

	var decoded schema.FeatureVector
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 7, decoded.Get(schema.KeyLOC))
	assert.Len(t, decoded, len(schema.FeatureKeys))
}

// TestFmtConfidence pins the display precision.
func TestFmtConfidence(t *testing.T) {
	assert.Equal(t, "0.500", fmtConfidence(0.5))
	assert.Equal(t, "0.825", fmtConfidence(0.825))
	assert.Equal(t, "1.000", fmtConfidence(1))
}

// TestTruncatePath keeps the tail of long paths.
func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"short path unchanged", "a/b.java", 20, "a/b.java"},
		{"exact fit unchanged", "abcdefghij", 10, "abcdefghij"},
		{"long path keeps tail", "src/main/java/app/web/OrderController.java", 23, "...OrderController.java"},
		{"tiny width", "abcdefghij", 3, "hij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := truncatePath(tt.path, tt.maxWidth)
			assert.Equal(t, tt.expected, out)
			assert.LessOrEqual(t, len(out), tt.maxWidth)
		})
	}
}

// TestGetMaxTablePathWidth covers the override and the clamping bounds.
func TestGetMaxTablePathWidth(t *testing.T) {
	t.Run("narrow override clamps to minimum", func(t *testing.T) {
		cfg := &contract.Config{Width: 40}
		assert.Equal(t, 15, getMaxTablePathWidth(cfg))
	})

	t.Run("wide override clamps to maximum", func(t *testing.T) {
		cfg := &contract.Config{Width: 500}
		assert.Equal(t, 70, getMaxTablePathWidth(cfg))
	})

	t.Run("mid-range override", func(t *testing.T) {
		cfg := &contract.Config{Width: 100}
		assert.Equal(t, 45, getMaxTablePathWidth(cfg))
	})
}

// TestResultLabelHonorsColorConfig verifies the plain/color split.
func TestResultLabelHonorsColorConfig(t *testing.T) {
	res := schema.CorrectedResult{Trusted: true}

	plain := resultLabel(&contract.Config{UseColors: false}, res)
	assert.Equal(t, contract.TrustedValue, plain)

	colored := resultLabel(&contract.Config{UseColors: true}, res)
	assert.Contains(t, colored, contract.TrustedValue)
}
