package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/internal/parquet"
	"github.com/archlens/archlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDataset outputs labeled training rows, dispatching based on the
// output format configured. Parquet is the format ML pipelines actually
// consume; text exists for eyeballing a batch before committing to one.
func WriteDataset(rows []schema.DatasetRow, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDatasetCSVResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteDatasetParquet(parquet.ConvertDatasetRows(rows), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetTable(rows, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeDatasetCSVResults handles opening the file and calling the CSV writer.
func writeDatasetCSVResults(rows []schema.DatasetRow, cfg *contract.Config) error {
	header := []string{
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
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range rows {
				rec := []string{
					r.Repo,
					string(r.Label),
					string(r.Predicted),
					fmtConfidence(r.Confidence),
					strconv.Itoa(r.TotalJavaFiles),
					strconv.Itoa(r.ClassCount),
					strconv.Itoa(r.LOC),
					strconv.Itoa(r.ControllerLayer),
					strconv.Itoa(r.ServiceLayer),
					strconv.Itoa(r.RepositoryLayer),
					strconv.Itoa(r.DomainLayer),
					strconv.Itoa(r.UsecaseLayer),
					strconv.Itoa(r.UniqueLayersUsed),
					r.FeaturesJSON,
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeDatasetTable generates and writes the human-readable table.
func writeDatasetTable(rows []schema.DatasetRow, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Repo", "Label", "Predicted", "Conf", "Files", "Classes", "LOC", "Layers"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	labelCounts := make(map[schema.ArchLabel]int)
	var data [][]string
	for _, r := range rows {
		labelCounts[r.Label]++
		data = append(data, []string{
			r.Repo,
			string(r.Label),
			string(r.Predicted),
			fmtConfidence(r.Confidence),
			strconv.Itoa(r.TotalJavaFiles),
			strconv.Itoa(r.ClassCount),
			strconv.Itoa(r.LOC),
			strconv.Itoa(r.UniqueLayersUsed),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute label distribution, the first thing to sanity-check in a
	// training set
	if _, err := fmt.Fprintf(writer, "Labeled %d repositories (mvc: %d, clean: %d, layered: %d)\n",
		len(rows), labelCounts[schema.MVCArch], labelCounts[schema.CleanArch], labelCounts[schema.LayeredArch]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Dataset completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}
