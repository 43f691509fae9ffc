package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/outwriter"
	"github.com/archlens/archlens/schema"
	"github.com/schollz/progressbar/v3"
)

// ExecuteDataset analyzes every repository directly under reposDir and
// writes one labeled row per repository, for ML training. Repositories the
// classifier cannot label are skipped with a warning rather than aborting
// the whole batch.
func ExecuteDataset(ctx context.Context, cfg *contract.Config, reposDir string, walker contract.SourceWalker, predictor contract.Predictor) error {
	start := time.Now()

	entries, err := os.ReadDir(reposDir)
	if err != nil {
		return fmt.Errorf("reading repositories directory: %w", err)
	}
	var repos []string
	for _, e := range entries {
		if e.IsDir() {
			repos = append(repos, e.Name())
		}
	}
	if len(repos) == 0 {
		return fmt.Errorf("no repositories found under %s", reposDir)
	}

	if !headerSuppressed(ctx) {
		outwriter.LogDatasetHeader(cfg, reposDir, len(repos))
	}

	bar := progressbar.NewOptions(len(repos),
		progressbar.OptionSetDescription("Analyzing repositories"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var (
		mu      sync.Mutex
		rows    []schema.DatasetRow
		skipped int
		wg      sync.WaitGroup
	)
	jobs := make(chan string)

	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for repo := range jobs {
				row, err := datasetRow(ctx, cfg, reposDir, repo, walker, predictor)
				mu.Lock()
				if err != nil {
					skipped++
					contract.LogWarn("skipping repository "+repo, err)
				} else {
					rows = append(rows, row)
				}
				mu.Unlock()
				_ = bar.Add(1)
			}
		}()
	}

	for _, repo := range repos {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- repo:
		}
	}
	close(jobs)
	wg.Wait()
	_ = bar.Finish()

	sort.Slice(rows, func(i, j int) bool { return rows[i].Repo < rows[j].Repo })

	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d of %d repositories\n", skipped, len(repos))
	}
	return outwriter.WriteDataset(rows, cfg, time.Since(start))
}

// datasetRow runs the pipeline for one repository under reposDir.
func datasetRow(ctx context.Context, cfg *contract.Config, reposDir, repo string, walker contract.SourceWalker, predictor contract.Predictor) (schema.DatasetRow, error) {
	root := filepath.Join(reposDir, repo)
	units, err := walker.Walk(ctx, root)
	if err != nil {
		return schema.DatasetRow{}, err
	}
	if len(units) == 0 {
		return schema.DatasetRow{}, errors.New("no Java sources found")
	}

	fv := Extract(units)
	res, err := classify(ctx, fv, predictor)
	if err != nil {
		return schema.DatasetRow{}, err
	}

	return schema.NewDatasetRow(repo, fv, res, outwriter.MarshalFeatures(fv)), nil
}
