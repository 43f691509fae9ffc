// Package javasrc walks a Java source tree and produces the compilation
// units the extractor consumes. It is a lightweight line scanner, not a full
// parser: it recovers packages, imports, type declarations, annotations,
// method signatures and call expressions, which is all the downstream
// analysis needs.
package javasrc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"
	"github.com/bmatcuk/doublestar/v4"
)

// maxUnitBytes caps how much of a single file is scanned. Generated Java
// files can be enormous and carry no architecture signal past this point.
const maxUnitBytes = 5 << 20

// Walker finds and scans Java compilation units under a root directory.
type Walker struct {
	excludes []string
	filter   string
}

var _ contract.SourceWalker = (*Walker)(nil) // Compile-time check

// NewWalker returns a walker honoring the given exclude patterns and
// optional path prefix filter.
func NewWalker(excludes []string, filter string) *Walker {
	return &Walker{excludes: excludes, filter: filter}
}

// Walk scans every Java file under root. Unreadable files are logged and
// skipped so that one bad unit never aborts a whole analysis. The returned
// units are sorted by path for deterministic downstream output.
func (w *Walker) Walk(ctx context.Context, root string) ([]schema.SourceUnit, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.java")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var units []schema.SourceUnit
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if contract.ShouldIgnore(rel, w.excludes) {
			continue
		}
		if w.filter != "" && !strings.HasPrefix(rel, w.filter) {
			continue
		}

		content, err := readCapped(filepath.Join(root, rel))
		if err != nil {
			contract.LogWarn("skipping unreadable source unit "+rel, err)
			continue
		}
		units = append(units, parseUnit(rel, content))
	}
	return units, nil
}

// readCapped reads at most maxUnitBytes from the file.
func readCapped(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	size := info.Size()
	if size > maxUnitBytes {
		size = maxUnitBytes
	}
	buf := make([]byte, size)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return "", err
	}
	return string(buf[:n]), nil
}

// CountUnits reports how many Java files the walk would visit, for progress
// reporting over large directories of repositories.
func CountUnits(root string, excludes []string) int {
	n := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, ".java") && !contract.ShouldIgnore(path, excludes) {
			n++
		}
		return nil
	})
	return n
}
