package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// MarshalFeatures serializes a feature vector as compact JSON. A feature
// vector is a flat map of counters, so encoding cannot fail.
func MarshalFeatures(fv schema.FeatureVector) string {
	b, _ := json.Marshal(fv)
	return string(b)
}

// fmtConfidence formats a classifier confidence for display.
func fmtConfidence(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// severityLabel picks the colored or plain severity label per config.
func severityLabel(cfg *contract.Config, sev schema.Severity) string {
	if cfg.UseColors {
		return contract.GetColorSeverityLabel(sev)
	}
	return contract.GetPlainSeverityLabel(sev)
}

// resultLabel picks the colored or plain correction-outcome label per config.
func resultLabel(cfg *contract.Config, res schema.CorrectedResult) string {
	if cfg.UseColors {
		return contract.GetColorResultLabel(res)
	}
	return contract.GetPlainResultLabel(res)
}

// truncatePath shortens a path for table display, keeping the tail since the
// filename carries the signal.
func truncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}
	if maxWidth <= 3 {
		return path[len(path)-maxWidth:]
	}
	return "..." + path[len(path)-(maxWidth-3):]
}

// getMaxTablePathWidth calculates the maximum width for unit paths in table
// output based on terminal width.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the Layer, Direction, Severity and Violations columns
	// plus table borders, separators and padding.
	baseWidth := 55

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
