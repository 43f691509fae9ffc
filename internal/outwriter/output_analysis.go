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

// WriteAnalysis outputs a classification outcome, dispatching based on the
// output format configured.
func WriteAnalysis(res schema.CorrectedResult, fv schema.FeatureVector, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAnalysisJSONResult(res, fv, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAnalysisCSVResult(res, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the dataset and analysis export commands")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(res, fv, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// WriteUnknownArchitecture reports a run where the classifier was
// unreachable. The caller already warned on stderr; this is the result
// itself, in whichever format was configured.
func WriteUnknownArchitecture(cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, map[string]string{
				"architecture": string(schema.UnknownArch),
				"reason":       "classifier unavailable",
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"architecture", "reason"}, func(cw *csv.Writer) error {
				return cw.Write([]string{string(schema.UnknownArch), "classifier unavailable"})
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the dataset and analysis export commands")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "Architecture: %s (classifier unavailable)\n", schema.UnknownArch); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Analysis completed in %v\n", duration)
			return err
		}, "Wrote result")
	}
}

// writeAnalysisJSONResult handles opening the file and calling the JSON writer.
func writeAnalysisJSONResult(res schema.CorrectedResult, fv schema.FeatureVector, cfg *contract.Config) error {
	// Prepare the data structure for JSON with the outcome label and the
	// extracted features added
	type JSONAnalysisResult struct {
		Result string `json:"result"`
		schema.CorrectedResult
		Features schema.FeatureVector `json:"features"`
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, JSONAnalysisResult{
			Result:          contract.GetPlainResultLabel(res),
			CorrectedResult: res,
			Features:        fv,
		})
	}, "Wrote JSON")
}

// writeAnalysisCSVResult handles opening the file and calling the CSV writer.
func writeAnalysisCSVResult(res schema.CorrectedResult, cfg *contract.Config) error {
	header := []string{
		"architecture",
		"predicted",
		"confidence",
		"result",
		"controller_bias",
		"clean_bias",
		"layered_bias",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return cw.Write([]string{
				string(res.Corrected),
				string(res.Predicted),
				fmtConfidence(res.Confidence),
				contract.GetPlainResultLabel(res),
				strconv.Itoa(res.Biases.Controller),
				strconv.Itoa(res.Biases.Clean),
				strconv.Itoa(res.Biases.Layered),
			})
		})
	}, "Wrote CSV")
}

// writeAnalysisTable generates and writes the human-readable table.
func writeAnalysisTable(res schema.CorrectedResult, fv schema.FeatureVector, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := [][]string{
		{"Architecture", string(res.Corrected)},
		{"Predicted", string(res.Predicted)},
		{"Confidence", fmtConfidence(res.Confidence)},
		{"Result", resultLabel(cfg, res)},
		{"Controller bias", strconv.Itoa(res.Biases.Controller)},
		{"Clean bias", strconv.Itoa(res.Biases.Clean)},
		{"Layered bias", strconv.Itoa(res.Biases.Layered)},
	}
	for _, label := range schema.AllArchLabels {
		if p, ok := res.Probabilities[label]; ok {
			data = append(data, []string{"P(" + string(label) + ")", fmtConfidence(p)})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	files := fv.Get(schema.KeyTotalJavaFiles)
	classes := fv.Get(schema.KeyClassCount)
	loc := fv.Get(schema.KeyLOC)
	if _, err := fmt.Fprintf(writer, "Analyzed %d files (%d classes, %d LOC)\n", files, classes, loc); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
