package iocache

import (
	"errors"
	"fmt"

	"github.com/archlens/archlens/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to a Parquet file.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)

	// Retrieve every stored run, oldest data included
	records, err := store.ListRecords(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertAnalysisRecords(records), outputFile); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}

	fmt.Printf("Exported %d runs to %s\n", len(records), outputFile)
	return nil
}
