package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/archlens/archlens/schema"
	"github.com/fatih/color"
)

// Confidence label constants.
const (
	TrustedValue  = "Trusted"  // Prediction returned unchanged
	AdjustedValue = "Adjusted" // Rule cascade replaced the prediction
	KeptValue     = "Kept"     // Cascade ran but kept the prediction
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // standard danger
	HighColor     = color.New(color.FgMagenta, color.Bold) // strong, distinct warning
	ModerateColor = color.New(color.FgYellow)              // standard caution, not bold
	LowColor      = color.New(color.FgCyan)                // informational signal
	OKColor       = color.New(color.FgGreen)               // healthy / trusted
)

// GetPlainSeverityLabel returns the plain text label for a severity.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainSeverityLabel(sev schema.Severity) string {
	switch sev {
	case schema.CriticalSeverity:
		return "Critical"
	case schema.HighSeverity:
		return "High"
	case schema.MediumSeverity:
		return "Medium"
	default:
		return "Low"
	}
}

// GetColorSeverityLabel returns a colored severity label for table output.
func GetColorSeverityLabel(sev schema.Severity) string {
	text := GetPlainSeverityLabel(sev)
	switch sev {
	case schema.CriticalSeverity:
		return CriticalColor.Sprint(text)
	case schema.HighSeverity:
		return HighColor.Sprint(text)
	case schema.MediumSeverity:
		return ModerateColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// GetPlainResultLabel describes how the heuristic layer treated a prediction.
func GetPlainResultLabel(res schema.CorrectedResult) string {
	switch {
	case res.Trusted:
		return TrustedValue
	case res.Changed():
		return AdjustedValue
	default:
		return KeptValue
	}
}

// GetColorResultLabel returns a colored version of GetPlainResultLabel.
func GetColorResultLabel(res schema.CorrectedResult) string {
	text := GetPlainResultLabel(res)
	switch text {
	case TrustedValue:
		return OKColor.Sprint(text)
	case AdjustedValue:
		return ModerateColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude
// patterns. It supports simple glob patterns (using filepath.Match) when the
// pattern contains wildcard characters. Patterns ending with '/' are treated
// as path fragments. Patterns starting with '.' are treated as suffix matches.
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}
		switch {
		case strings.ContainsAny(ex, "*?["):
			if ok, err := filepath.Match(ex, filepath.Base(path)); err == nil && ok {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".archlens_cache.db"
	}
	return filepath.Join(homeDir, ".archlens_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".archlens_analysis.db"
	}
	return filepath.Join(homeDir, ".archlens_analysis.db")
}
