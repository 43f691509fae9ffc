package cmd

import (
	"fmt"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/iocache"
	"github.com/archlens/archlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analysisSetup loads minimal configuration needed for analysis store operations.
func analysisSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get analysis-related config values
	backend := schema.DatabaseBackend(viper.GetString("analysis-backend"))
	connStr := viper.GetString("analysis-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid analysis backend %q (valid: sqlite, mysql, postgresql, none)", backend)
	}

	// Initialize run tracking only; the feature cache is not needed here
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis store: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr

	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisCmd focused on classification run tracking.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage stored classification runs",
	Long: `Manage the store that records every classification run: which repository
was analyzed, what the classifier predicted and what the corrector decided.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run statistics and connection info
  clear   - Remove all stored runs
  export  - Export data to Parquet for analytics
  migrate - Run schema migrations

Examples:
  # Check how many runs are stored
  archlens analysis status

  # Export history for BI tools
  archlens analysis export --output-file analysis-data.parquet`,
}

// analysisStatusCmd shows analysis store status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about the classification run store.

Displays:
- Backend type and connection status
- Total runs and distinct repositories tracked
- Last and oldest run timestamps

Examples:
  # Check analysis store status
  archlens analysis status`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetAnalysisStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(status)
	},
}

// analysisClearCmd clears the stored runs.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored classification runs",
	Long: `Delete all stored classification runs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the runs table

Examples:
  # Clear SQLite run history (default)
  archlens analysis clear`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, contract.GetAnalysisDBFilePath(), cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisExportCmd exports stored runs to Parquet.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored runs to Parquet for BI tools and analytics",
	Long: `Export all stored classification runs to Parquet format for use with
analytics tools.

Parquet format enables:
- DuckDB: SELECT * FROM read_parquet('runs.parquet')
- pandas: pd.read_parquet('runs.parquet')
- Spark, BigQuery and most warehouse loaders

Examples:
  # Export run history
  archlens analysis export --output-file archlens-runs.parquet

  # Query the export directly
  archlens analysis export --output-file data.parquet
  duckdb -c "SELECT corrected, COUNT(*) FROM read_parquet('data.parquet') GROUP BY corrected"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs schema migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations for the run tracking store",
	Long: `Apply or roll back schema migrations on the classification run store.

Versions:
  --target-version -1   migrate to the latest version (default)
  --target-version  0   roll back all migrations
  --target-version  N   migrate to version N

Examples:
  # Migrate to latest
  archlens analysis migrate

  # Roll everything back
  archlens analysis migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection; only config loading is needed.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.DatabaseBackend(viper.GetString("analysis-backend"))
		connStr := viper.GetString("analysis-db-connect")
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
