package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteFeatures outputs an extracted feature vector, dispatching based on
// the output format configured. Keys always appear in canonical schema order.
func WriteFeatures(fv schema.FeatureVector, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, fv)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeFeaturesCSVResults(fv, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the dataset and analysis export commands")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFeaturesTable(fv, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeFeaturesCSVResults handles opening the file and calling the CSV writer.
func writeFeaturesCSVResults(fv schema.FeatureVector, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"feature", "value"}, func(cw *csv.Writer) error {
			for _, key := range schema.FeatureKeys {
				if err := cw.Write([]string{key, strconv.Itoa(fv.Get(key))}); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeFeaturesTable generates and writes the human-readable table. Zero
// values are kept; a zero counter is signal, not noise.
func writeFeaturesTable(fv schema.FeatureVector, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Feature", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, key := range schema.FeatureKeys {
		data = append(data, []string{key, strconv.Itoa(fv.Get(key))})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Extracted %d features in %v\n", len(schema.FeatureKeys), duration); err != nil {
		return err
	}
	return nil
}
