package cmd

import (
	"github.com/archlens/archlens/core"
	"github.com/archlens/archlens/internal/contract"
	"github.com/spf13/cobra"
)

// datasetCmd generates a labeled training dataset from many repositories.
var datasetCmd = &cobra.Command{
	Use:   "dataset <repos-dir>",
	Short: "Label every repository under a directory to build a training dataset.",
	Long: `Analyze every repository directly under <repos-dir> and emit one labeled
row per repository: the corrected architecture label, the promoted feature
columns and the full feature vector as JSON.

Repositories are processed concurrently (see --workers). Repositories the
classifier cannot label are skipped with a warning so one bad checkout
never poisons the batch.

Examples:
  # Label a corpus and write Parquet for training
  archlens dataset ~/corpus --output parquet --output-file dataset.parquet

  # Quick CSV export with more workers
  archlens dataset ~/corpus --workers 8 --output csv --output-file dataset.csv

  # Eyeball the label distribution first
  archlens dataset ~/corpus`,
	Args:    cobra.ExactArgs(1),
	PreRunE: datasetSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteDataset(rootCtx, cfg, args[0], newWalker(), newPredictor()); err != nil {
			contract.LogFatal("Cannot generate dataset", err)
		}
	},
}

// datasetSetupWrapper runs sharedSetup without treating the positional
// argument as the repo path; it names the corpus directory instead.
func datasetSetupWrapper(cmd *cobra.Command, _ []string) error {
	return sharedSetup(rootCtx, cmd, nil)
}
