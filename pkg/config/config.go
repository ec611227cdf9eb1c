// Package config provides the run configuration for titleclean.
//
// A run reads one table, cleans it and writes the cleaned table plus a
// plain-text summary. Everything else is optional and off by default:
// the JSON summary sidecar, the Prometheus textfile and the trace file.
//
// Values are resolved in three layers: Default, then a YAML file loaded
// with Load, then explicit command line flags applied by the caller.
// Validate must be called after the last layer.
package config

import (
	"github.com/ajitpratap0/titleclean/pkg/audit"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/logger"
)

// Default file names, matching the script the tool replaces.
const (
	DefaultInputPath   = "netflix_titles.csv"
	DefaultOutputPath  = "netflix_cleaned.csv"
	DefaultSummaryPath = "cleaning_summary.txt"
)

// Config is the complete configuration of one cleaning run.
type Config struct {
	// Input is the table to clean
	Input core.Config `yaml:"input" json:"input"`
	// Output receives the cleaned table
	Output core.Config `yaml:"output" json:"output"`
	// Summary controls the cleaning report
	Summary SummaryConfig `yaml:"summary" json:"summary"`
	// Logging configures the global zap logger
	Logging logger.Config `yaml:"logging" json:"logging"`
	// Observability holds the optional metrics and trace exports
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// SummaryConfig controls where and how the cleaning summary is written.
type SummaryConfig struct {
	// Path of the plain-text report
	Path string `yaml:"path" json:"path" validate:"required"`
	// Title heads the report. Empty means the default title.
	Title string `yaml:"title,omitempty" json:"title,omitempty" validate:"max=200"`
	// JSONPath, when set, also writes the summary as JSON
	JSONPath string `yaml:"json_path,omitempty" json:"json_path,omitempty"`
}

// ObservabilityConfig names the optional observability artifacts.
type ObservabilityConfig struct {
	// MetricsFile receives the run metrics in Prometheus text format
	MetricsFile string `yaml:"metrics_file,omitempty" json:"metrics_file,omitempty"`
	// TraceFile receives the run's spans, one JSON document per span
	TraceFile string `yaml:"trace_file,omitempty" json:"trace_file,omitempty"`
}

// Default returns the configuration used when no file or flag says
// otherwise.
func Default() *Config {
	return &Config{
		Input:  core.Config{Path: DefaultInputPath},
		Output: core.Config{Path: DefaultOutputPath},
		Summary: SummaryConfig{
			Path:  DefaultSummaryPath,
			Title: audit.DefaultTitle,
		},
		Logging: logger.DefaultConfig(),
	}
}
