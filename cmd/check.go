package cmd

import (
	"github.com/archlens/archlens/core"
	"github.com/archlens/archlens/internal/contract"
	"github.com/spf13/cobra"
)

// violationsCmd reports architecture violations.
var violationsCmd = &cobra.Command{
	Use:   "violations [repo-path]",
	Short: "Detect dependency violations against the classified architecture.",
	Long: `Analyze cross-layer dependencies and flag units that break the rules of
the classified architecture.

Detected violations:
- Layer skips (controller reaching straight into repositories)
- Reversed dependencies (repositories calling services, services calling controllers)
- Dependency-rule breaches in clean architecture (domain depending outward)
- Missing usecase mediation between controllers and services

When the classifier is unreachable the architecture is inferred from the
strongest structural signal so the dependency rules still have a baseline.

Examples:
  # List violations for the current directory
  archlens violations

  # Only the serious ones
  archlens violations --severity high

  # Machine-readable report
  archlens violations --output json --output-file violations.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteViolations(rootCtx, cfg, newWalker(), newPredictor()); err != nil {
			contract.LogFatal("Cannot run violations analysis", err)
		}
	},
}

// checkCmd gates CI/CD on architecture violations.
var checkCmd = &cobra.Command{
	Use:   "check [repo-path]",
	Short: "Fail with a non-zero exit code on architecture violations (CI/CD gate).",
	Long: `Run the violations analysis as a pass/fail gate. The command exits 1 when
any unit carries a violation at or above the severity floor, making it
suitable for CI/CD pipelines.

Examples:
  # Gate on high severity and above (the default)
  archlens check

  # Strict gate for clean architecture teams
  archlens check --severity medium

  # Gate a specific repository
  archlens check ~/src/orders-service --severity critical`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, newWalker(), newPredictor()); err != nil {
			contract.LogFatal("Cannot run check", err)
		}
	},
}
