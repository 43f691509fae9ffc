package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/archlens/archlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit       = 25
	MaxResultLimit           = 1000
	DefaultClassifierURL     = "http://localhost:8000"
	DefaultClassifierTimeout = 10 * time.Second
	MaxClassifierTimeout     = 2 * time.Minute
)

// DefaultWorkers is the default number of concurrent workers for bulk runs.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath   string   // Absolute path to the source tree under analysis
	PathFilter string   // Optional path prefix filter for units
	Excludes   []string // Path prefixes/suffixes/globs to ignore

	ResultLimit int
	Workers     int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	ClassifierURL     string
	ClassifierTimeout time.Duration

	SeverityFloor schema.Severity // Gate threshold for the check command

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext
}

// Clone returns a copy of the config for per-request mutation (MCP handlers).
func (c *Config) Clone() *Config {
	out := *c
	out.Excludes = append([]string(nil), c.Excludes...)
	return &out
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Filter            string `mapstructure:"filter"`
	Exclude           string `mapstructure:"exclude"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	ClassifierURL     string `mapstructure:"classifier-url"`
	ClassifierTimeout string `mapstructure:"classifier-timeout"`
	Severity          string `mapstructure:"severity"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`

	// RepoPathStr is the positional argument; Viper does not handle those.
	RepoPathStr string `mapstructure:"-"`
}

// defaultExcludes are path fragments that never contribute to architecture
// signal and only slow the walk down.
var defaultExcludes = []string{
	"target/", "build/", "out/", "bin/", ".gradle/",
	"node_modules/", ".git/",
	"src/test/", "Test.java", "Tests.java", "IT.java",
}

// ProcessAndValidate validates raw input and populates cfg from it.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// Result limit
	if input.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", input.Limit)
	}
	if input.Limit > MaxResultLimit {
		return fmt.Errorf("limit cannot exceed %d", MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	// Workers
	cfg.Workers = input.Workers
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	// Output mode
	out := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[out]; !ok {
		return fmt.Errorf("invalid output mode %q (valid: text, csv, json, parquet)", input.Output)
	}
	cfg.Output = out
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.UseColors = parseBoolFlag(input.Color)

	// Classifier endpoint
	cfg.ClassifierURL = strings.TrimRight(input.ClassifierURL, "/")
	if cfg.ClassifierURL == "" {
		cfg.ClassifierURL = DefaultClassifierURL
	}
	cfg.ClassifierTimeout = DefaultClassifierTimeout
	if input.ClassifierTimeout != "" {
		d, err := time.ParseDuration(input.ClassifierTimeout)
		if err != nil {
			return fmt.Errorf("invalid classifier timeout %q: %w", input.ClassifierTimeout, err)
		}
		if d <= 0 || d > MaxClassifierTimeout {
			return fmt.Errorf("classifier timeout must be in (0, %s], got %s", MaxClassifierTimeout, d)
		}
		cfg.ClassifierTimeout = d
	}

	// Severity floor for gating
	cfg.SeverityFloor = schema.HighSeverity
	if input.Severity != "" {
		sev := schema.Severity(strings.ToLower(input.Severity))
		switch sev {
		case schema.LowSeverity, schema.MediumSeverity, schema.HighSeverity, schema.CriticalSeverity:
			cfg.SeverityFloor = sev
		default:
			return fmt.Errorf("invalid severity %q (valid: low, medium, high, critical)", input.Severity)
		}
	}

	// Persistence backends
	cacheBackend := schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend %q (valid: sqlite, mysql, postgresql, none)", input.CacheBackend)
	}
	cfg.CacheBackend = cacheBackend
	cfg.CacheDBConnect = input.CacheDBConnect

	if input.AnalysisBackend != "" {
		analysisBackend := schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
		if _, ok := schema.ValidDatabaseBackends[analysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend %q (valid: sqlite, mysql, postgresql, none)", input.AnalysisBackend)
		}
		if analysisBackend != schema.NoneBackend && analysisBackend != schema.SQLiteBackend &&
			input.AnalysisDBConnect != "" && input.AnalysisDBConnect == input.CacheDBConnect {
			return fmt.Errorf("analysis-db-connect must differ from cache-db-connect")
		}
		cfg.AnalysisBackend = analysisBackend
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
	}

	// Excludes
	cfg.Excludes = append([]string(nil), defaultExcludes...)
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.Excludes = append(cfg.Excludes, p)
			}
		}
	}
	cfg.PathFilter = input.Filter

	// Repo path: resolve to an absolute path and require it to exist.
	repoPath := input.RepoPathStr
	if repoPath == "" {
		repoPath = "."
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("cannot resolve path %q: %w", repoPath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", abs)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", abs)
	}
	cfg.RepoPath = abs

	return nil
}

// parseBoolFlag accepts the yes/no style values the color flag has always taken.
func parseBoolFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on", "":
		return true
	default:
		return false
	}
}
