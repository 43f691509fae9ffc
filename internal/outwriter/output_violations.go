package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteViolations outputs a dependency analysis report, dispatching based
// on the output format configured.
func WriteViolations(report schema.ViolationReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeViolationsCSVResults(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the dataset and analysis export commands")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeViolationsTable(report, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// WriteCheck outputs the CI gate verdict: the units at or above the severity
// floor, or a pass confirmation when there are none.
func WriteCheck(report schema.ViolationReport, flagged []schema.UnitReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		type JSONCheckResult struct {
			Architecture schema.ArchLabel    `json:"architecture"`
			Floor        schema.Severity     `json:"severity_floor"`
			Passed       bool                `json:"passed"`
			Flagged      []schema.UnitReport `json:"flagged"`
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, JSONCheckResult{
				Architecture: report.Architecture,
				Floor:        cfg.SeverityFloor,
				Passed:       len(flagged) == 0,
				Flagged:      flagged,
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeViolationRows(w, flagged)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the dataset and analysis export commands")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(report, flagged, cfg, duration, w)
		}, "Wrote result")
	}
}

// writeViolationsCSVResults writes one CSV row per detected violation.
func writeViolationsCSVResults(report schema.ViolationReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeViolationRows(w, report.Units)
	}, "Wrote CSV")
}

// writeViolationRows writes the flat per-violation CSV rows for units.
func writeViolationRows(w io.Writer, units []schema.UnitReport) error {
	header := []string{"path", "layer", "direction", "kind", "severity", "detail"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, u := range units {
			for _, v := range u.Violations {
				rec := []string{
					u.Path,
					string(u.Layer),
					string(u.Direction),
					string(v.Kind),
					string(v.Severity),
					v.Detail,
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeViolationsTable generates and writes the human-readable table. Only
// units carrying violations become rows; clean units fold into the summary.
func writeViolationsTable(report schema.ViolationReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Architecture: %s\n", report.Architecture); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Path", "Layer", "Direction", "Severity", "Violation"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxPath := getMaxTablePathWidth(cfg)
	var data [][]string
	total := 0
	flaggedUnits := 0
	for _, u := range report.Units {
		if len(u.Violations) == 0 {
			continue
		}
		flaggedUnits++
		for _, v := range u.Violations {
			total++
			if len(data) >= cfg.ResultLimit {
				continue
			}
			data = append(data, []string{
				truncatePath(u.Path, maxPath),
				string(u.Layer),
				string(u.Direction),
				severityLabel(cfg, v.Severity),
				string(v.Kind),
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if total > len(data) {
		if _, err := fmt.Fprintf(writer, "Showing %d of %d violations (raise --limit for more)\n", len(data), total); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "%d violation(s) across %d of %d units\n", total, flaggedUnits, len(report.Units)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCheckText writes the human-readable gate verdict.
func writeCheckText(report schema.ViolationReport, flagged []schema.UnitReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Architecture: %s (gate: %s and above)\n", report.Architecture, cfg.SeverityFloor); err != nil {
		return err
	}
	if len(flagged) == 0 {
		_, err := fmt.Fprintf(writer, "✅ Check passed: %d units clean in %v\n", len(report.Units), duration)
		return err
	}

	maxPath := getMaxTablePathWidth(cfg)
	for _, u := range flagged {
		for _, v := range u.Violations {
			if !v.Severity.AtLeast(cfg.SeverityFloor) {
				continue
			}
			if _, err := fmt.Fprintf(writer, "❌ %s [%s] %s: %s\n",
				truncatePath(u.Path, maxPath), severityLabel(cfg, v.Severity), v.Kind, v.Detail); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(writer, "Check completed in %v\n", duration)
	return err
}
