package cmd

import (
	"github.com/archlens/archlens/core"
	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/iocache"
	"github.com/spf13/cobra"
)

// analyzeCmd classifies the architecture of a source tree.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Classify the architecture pattern of a Java/Spring source tree.",
	Long: `Walk a Java source tree, extract its structural feature vector and classify
the architecture pattern through the classifier service, then apply the
heuristic correction layer to the prediction.

The corrector trusts confident predictions (>= 0.75) as-is. Below that it
weighs the label against structural evidence: stereotype annotations, layer
population and cross-layer references. Very low confidence (< 0.60) hands
the decision to the strongest aggregate signal.

Examples:
  # Classify the current directory
  archlens analyze

  # Classify a specific repository
  archlens analyze ~/src/petclinic

  # Use a remote classifier and export the outcome
  archlens analyze --classifier-url http://ml.internal:8000 --output json --output-file result.json

  # Skip test sources explicitly
  archlens analyze --exclude "src/it/,Stub.java"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, newWalker(), newPredictor(), iocache.Manager); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}

// featuresCmd extracts the feature vector without classifying.
var featuresCmd = &cobra.Command{
	Use:   "features [repo-path]",
	Short: "Extract the raw architecture feature vector.",
	Long: `Walk a Java source tree and print the structural feature vector the
classifier consumes, without calling the classifier.

Useful for:
- Debugging unexpected classifications
- Feeding external ML experiments
- Inspecting what the extractor sees in a codebase

Examples:
  # Inspect features for the current directory
  archlens features

  # Export features as CSV
  archlens features --output csv --output-file features.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFeatures(rootCtx, cfg, newWalker(), iocache.Manager); err != nil {
			contract.LogFatal("Cannot extract features", err)
		}
	},
}
