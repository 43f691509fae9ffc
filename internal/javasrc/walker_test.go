package javasrc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree lays out files under root, creating directories as needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// TestWalkFindsNestedJavaFiles verifies recursion, non-Java skipping and
// deterministic ordering.
func TestWalkFindsNestedJavaFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main/java/app/web/OrderController.java": "package app.web;\nclass OrderController {}\n",
		"src/main/java/app/OrderService.java":        "package app;\nclass OrderService {}\n",
		"pom.xml":   "<project/>",
		"README.md": "hi",
	})

	walker := NewWalker(nil, "")
	units, err := walker.Walk(context.Background(), root)

	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "src/main/java/app/OrderService.java", units[0].Path)
	assert.Equal(t, "src/main/java/app/web/OrderController.java", units[1].Path)
	assert.Equal(t, "app", units[0].Package)
}

// TestWalkHonorsExcludes verifies build output and test sources are skipped.
func TestWalkHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main/java/App.java":           "class App {}\n",
		"target/generated/Gen.java":        "class Gen {}\n",
		"src/test/java/AppTest.java":       "class AppTest {}\n",
		"src/main/java/OrderTest.java":     "class OrderTest {}\n",
		"src/main/java/LegacyGen_.java":    "class LegacyGen_ {}\n",
	})

	excludes := []string{"target/", "src/test/", "Test.java", "*Gen_.java"}
	walker := NewWalker(excludes, "")
	units, err := walker.Walk(context.Background(), root)

	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "src/main/java/App.java", units[0].Path)
}

// TestWalkHonorsFilter verifies the path prefix filter.
func TestWalkHonorsFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"core/A.java":  "class A {}\n",
		"other/B.java": "class B {}\n",
	})

	walker := NewWalker(nil, "core/")
	units, err := walker.Walk(context.Background(), root)

	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "core/A.java", units[0].Path)
}

// TestWalkCanceledContext verifies the walk stops on cancellation.
func TestWalkCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"A.java": "class A {}\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	walker := NewWalker(nil, "")
	_, err := walker.Walk(ctx, root)

	assert.ErrorIs(t, err, context.Canceled)
}

// TestWalkEmptyTree returns no units and no error.
func TestWalkEmptyTree(t *testing.T) {
	walker := NewWalker(nil, "")
	units, err := walker.Walk(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, units)
}

// TestCountUnits verifies the quick pre-count matches the walk.
func TestCountUnits(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/A.java":      "class A {}\n",
		"b/B.java":      "class B {}\n",
		"target/C.java": "class C {}\n",
	})

	assert.Equal(t, 2, CountUnits(root, []string{"target/"}))
}
