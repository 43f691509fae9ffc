// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/archlens/archlens/internal/contract"
)

// LogAnalyzeHeader prints a header for single-repository analysis.
func LogAnalyzeHeader(cfg *contract.Config) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}

	// Line 1: The analysis summary (Repo and Output mode)
	fmt.Printf("🔎 Repo: %s (Output: %s)\n", repoName, cfg.Output)

	// Line 2: The classifier endpoint behind the prediction
	fmt.Printf("🧠 Classifier: %s (timeout: %v)\n", cfg.ClassifierURL, cfg.ClassifierTimeout)
}

// LogDatasetHeader prints a header for bulk dataset generation.
func LogDatasetHeader(cfg *contract.Config, reposDir string, numRepos int) {
	fmt.Printf("🔎 Dataset root: %s (%d repositories)\n", reposDir, numRepos)
	fmt.Printf("🧠 Classifier: %s (workers: %d)\n", cfg.ClassifierURL, cfg.Workers)
}
