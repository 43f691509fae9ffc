// Package parquet exports archlens data to Parquet files using
// github.com/parquet-go/parquet-go, for use with DuckDB, pandas and
// other analytics tools.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/archlens/archlens/schema"
	"github.com/parquet-go/parquet-go"
)

// DatasetSample is one labeled training sample. The promoted numeric
// columns mirror the columns ML training filters on; the full feature
// vector rides along as JSON.
type DatasetSample struct {
	Repo             string  `parquet:"repo,snappy"`
	Label            string  `parquet:"label,snappy"`
	Predicted        string  `parquet:"predicted,snappy"`
	Confidence       float64 `parquet:"confidence,snappy"`
	TotalJavaFiles   int32   `parquet:"total_java_files,snappy"`
	ClassCount       int32   `parquet:"class_count,snappy"`
	LOC              int32   `parquet:"loc,snappy"`
	ControllerLayer  int32   `parquet:"controller_layer,snappy"`
	ServiceLayer     int32   `parquet:"service_layer,snappy"`
	RepositoryLayer  int32   `parquet:"repository_layer,snappy"`
	DomainLayer      int32   `parquet:"domain_layer,snappy"`
	UsecaseLayer     int32   `parquet:"usecase_layer,snappy"`
	UniqueLayersUsed int32   `parquet:"unique_layers_used,snappy"`
	FeaturesJSON     string  `parquet:"features_json,snappy"`
}

// AnalysisRun is one stored classification outcome. This struct maps to
// the archlens_analysis_runs database table.
type AnalysisRun struct {
	RunID        int64      `parquet:"run_id,snappy"`
	ExternalID   string     `parquet:"external_id,snappy"`
	RepoPath     string     `parquet:"repo_path,snappy"`
	StartedAt    time.Time  `parquet:"started_at,snappy"`
	FinishedAt   *time.Time `parquet:"finished_at,optional,snappy"`
	Predicted    string     `parquet:"predicted,snappy"`
	Corrected    string     `parquet:"corrected,snappy"`
	Confidence   float64    `parquet:"confidence,snappy"`
	FeaturesJSON string     `parquet:"features_json,snappy"`
}

// WriteDatasetParquet writes labeled training samples to a Parquet file.
func WriteDatasetParquet(data []DatasetSample, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteAnalysisRunsParquet writes stored analysis runs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet creates outputPath and streams rows into it. The Parquet
// schema is inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

// ConvertDatasetRows converts schema.DatasetRow to DatasetSample for export.
func ConvertDatasetRows(rows []schema.DatasetRow) []DatasetSample {
	result := make([]DatasetSample, len(rows))
	for i, r := range rows {
		result[i] = DatasetSample{
			Repo:             r.Repo,
			Label:            string(r.Label),
			Predicted:        string(r.Predicted),
			Confidence:       r.Confidence,
			TotalJavaFiles:   int32(r.TotalJavaFiles),
			ClassCount:       int32(r.ClassCount),
			LOC:              int32(r.LOC),
			ControllerLayer:  int32(r.ControllerLayer),
			ServiceLayer:     int32(r.ServiceLayer),
			RepositoryLayer:  int32(r.RepositoryLayer),
			DomainLayer:      int32(r.DomainLayer),
			UsecaseLayer:     int32(r.UsecaseLayer),
			UniqueLayersUsed: int32(r.UniqueLayersUsed),
			FeaturesJSON:     r.FeaturesJSON,
		}
	}
	return result
}

// ConvertAnalysisRecords converts schema.AnalysisRecord to AnalysisRun for export.
func ConvertAnalysisRecords(records []schema.AnalysisRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, rec := range records {
		run := AnalysisRun{
			RunID:        rec.RunID,
			ExternalID:   rec.ExternalID,
			RepoPath:     rec.RepoPath,
			StartedAt:    rec.StartedAt,
			Predicted:    string(rec.Predicted),
			Corrected:    string(rec.Corrected),
			Confidence:   rec.Confidence,
			FeaturesJSON: rec.FeaturesJSON,
		}
		if !rec.FinishedAt.IsZero() {
			finished := rec.FinishedAt
			run.FinishedAt = &finished
		}
		result[i] = run
	}
	return result
}
