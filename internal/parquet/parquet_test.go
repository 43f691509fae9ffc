package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/archlens/archlens/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetSampleStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(DatasetSample))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"repo",
		"label",
		"predicted",
		"confidence",
		"total_java_files",
		"class_count",
		"loc",
		"controller_layer",
		"service_layer",
		"repository_layer",
		"domain_layer",
		"usecase_layer",
		"unique_layers_used",
		"features_json",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestAnalysisRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(AnalysisRun))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id",
		"external_id",
		"repo_path",
		"started_at",
		"finished_at",
		"predicted",
		"corrected",
		"confidence",
		"features_json",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteDatasetParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "dataset.parquet")

	data := []DatasetSample{
		{
			Repo:             "spring-petclinic",
			Label:            "mvc",
			Predicted:        "mvc",
			Confidence:       0.91,
			TotalJavaFiles:   42,
			ClassCount:       38,
			LOC:              5120,
			ControllerLayer:  6,
			ServiceLayer:     4,
			RepositoryLayer:  5,
			UniqueLayersUsed: 3,
			FeaturesJSON:     `{"class_count":38}`,
		},
		{
			Repo:             "clean-orders",
			Label:            "clean",
			Predicted:        "layered",
			Confidence:       0.48,
			TotalJavaFiles:   17,
			ClassCount:       15,
			LOC:              1800,
			DomainLayer:      7,
			UsecaseLayer:     3,
			UniqueLayersUsed: 4,
			FeaturesJSON:     `{"class_count":15}`,
		},
	}

	err := WriteDatasetParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[DatasetSample](file)
	defer reader.Close()

	readData := make([]DatasetSample, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].Repo, readData[i].Repo, "Repo should match")
		assert.Equal(t, data[i].Label, readData[i].Label, "Label should match")
		assert.Equal(t, data[i].Predicted, readData[i].Predicted, "Predicted should match")
		assert.InDelta(t, data[i].Confidence, readData[i].Confidence, 0.001, "Confidence should match")
		assert.Equal(t, data[i].TotalJavaFiles, readData[i].TotalJavaFiles, "TotalJavaFiles should match")
		assert.Equal(t, data[i].UniqueLayersUsed, readData[i].UniqueLayersUsed, "UniqueLayersUsed should match")
		assert.Equal(t, data[i].FeaturesJSON, readData[i].FeaturesJSON, "FeaturesJSON should match")
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "analysis_runs.parquet")

	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(3 * time.Second)
	data := []AnalysisRun{
		{
			RunID:        1,
			ExternalID:   "8b5c2e34-6c77-4a2e-9c11-0f60d0f9a001",
			RepoPath:     "/repos/spring-petclinic",
			StartedAt:    started,
			FinishedAt:   &finished,
			Predicted:    "mvc",
			Corrected:    "mvc",
			Confidence:   0.91,
			FeaturesJSON: `{"class_count":38}`,
		},
		{
			RunID:      2,
			ExternalID: "8b5c2e34-6c77-4a2e-9c11-0f60d0f9a002",
			RepoPath:   "/repos/clean-orders",
			StartedAt:  started.Add(time.Minute),
			// FinishedAt nil: run never completed
			Predicted:    "clean",
			Confidence:   0.48,
			FeaturesJSON: `{"class_count":15}`,
		},
	}

	err := WriteAnalysisRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[AnalysisRun](file)
	defer reader.Close()

	readData := make([]AnalysisRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].ExternalID, readData[i].ExternalID, "ExternalID should match")
		assert.Equal(t, data[i].RepoPath, readData[i].RepoPath, "RepoPath should match")
		assert.Equal(t, data[i].Predicted, readData[i].Predicted, "Predicted should match")
		assert.Equal(t, data[i].Corrected, readData[i].Corrected, "Corrected should match")

		if data[i].FinishedAt == nil {
			assert.Nil(t, readData[i].FinishedAt, "FinishedAt should be nil")
		} else {
			require.NotNil(t, readData[i].FinishedAt, "FinishedAt should not be nil")
			assert.WithinDuration(t, *data[i].FinishedAt, *readData[i].FinishedAt, time.Nanosecond, "FinishedAt should match within nanosecond precision")
		}
	}
}

func TestWriteDatasetParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_dataset.parquet")

	err := WriteDatasetParquet([]DatasetSample{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Parquet file carries schema metadata even when empty")
}

func TestConvertDatasetRows(t *testing.T) {
	rows := []schema.DatasetRow{
		{
			Repo:             "spring-petclinic",
			Label:            schema.MVCArch,
			Predicted:        schema.LayeredArch,
			Confidence:       0.62,
			TotalJavaFiles:   42,
			ClassCount:       38,
			LOC:              5120,
			ControllerLayer:  6,
			ServiceLayer:     4,
			RepositoryLayer:  5,
			DomainLayer:      2,
			UsecaseLayer:     0,
			UniqueLayersUsed: 4,
			FeaturesJSON:     `{"loc":5120}`,
		},
	}

	samples := ConvertDatasetRows(rows)
	require.Len(t, samples, 1)

	s := samples[0]
	assert.Equal(t, "spring-petclinic", s.Repo)
	assert.Equal(t, "mvc", s.Label)
	assert.Equal(t, "layered", s.Predicted)
	assert.InDelta(t, 0.62, s.Confidence, 0.001)
	assert.Equal(t, int32(42), s.TotalJavaFiles)
	assert.Equal(t, int32(38), s.ClassCount)
	assert.Equal(t, int32(5120), s.LOC)
	assert.Equal(t, int32(6), s.ControllerLayer)
	assert.Equal(t, int32(4), s.ServiceLayer)
	assert.Equal(t, int32(5), s.RepositoryLayer)
	assert.Equal(t, int32(2), s.DomainLayer)
	assert.Equal(t, int32(0), s.UsecaseLayer)
	assert.Equal(t, int32(4), s.UniqueLayersUsed)
	assert.Equal(t, `{"loc":5120}`, s.FeaturesJSON)
}

func TestConvertAnalysisRecords(t *testing.T) {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []schema.AnalysisRecord{
		{
			RunID:        7,
			ExternalID:   "8b5c2e34-6c77-4a2e-9c11-0f60d0f9a007",
			RepoPath:     "/repos/clean-orders",
			StartedAt:    started,
			FinishedAt:   started.Add(2 * time.Second),
			Predicted:    schema.CleanArch,
			Corrected:    schema.CleanArch,
			Confidence:   0.88,
			FeaturesJSON: `{"domain_layer":7}`,
		},
		{
			RunID:      8,
			RepoPath:   "/repos/unfinished",
			StartedAt:  started,
			Predicted:  schema.MVCArch,
			Confidence: 0.50,
		},
	}

	runs := ConvertAnalysisRecords(records)
	require.Len(t, runs, 2)

	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, "clean", runs[0].Predicted)
	assert.Equal(t, "clean", runs[0].Corrected)
	require.NotNil(t, runs[0].FinishedAt, "A finished run should carry its end time")
	assert.Equal(t, started.Add(2*time.Second), *runs[0].FinishedAt)

	// Zero FinishedAt maps to a null parquet column, not the zero time.
	assert.Nil(t, runs[1].FinishedAt)
	assert.Equal(t, "mvc", runs[1].Predicted)
	assert.Equal(t, "", runs[1].Corrected)
}
