package config

import (
	"path/filepath"
	"testing"

	"github.com/ajitpratap0/titleclean/pkg/compression"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{
			name:    "missing input path",
			mutate:  func(c *Config) { c.Input.Path = "" },
			message: "input.path is required",
		},
		{
			name:    "missing summary path",
			mutate:  func(c *Config) { c.Summary.Path = "" },
			message: "summary.path is required",
		},
		{
			name:    "unknown compression",
			mutate:  func(c *Config) { c.Output.Compression = "brotli" },
			message: "output.compression must be one of: none, gzip, snappy, lz4, zstd, s2",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			message: "logging.level must be one of: debug, info, warn, error",
		},
		{
			name:    "compressed workbook",
			mutate:  func(c *Config) { c.Output.Path = "cleaned.xlsx.gz" },
			message: `output.path "cleaned.xlsx.gz" is not a supported table file`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	cfg := Default()
	cfg.Input.Path = ""
	cfg.Summary.Path = ""

	err := cfg.Validate()
	require.Error(t, err)
	fields, ok := errors.Detail(err, "fields")
	require.True(t, ok)
	assert.Equal(t, 2, fields)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := testutil.WriteFile(t, "titleclean.yaml", `
input:
  path: data/titles.tsv
output:
  path: out/cleaned.csv.zst
  level: better
summary:
  title: Weekly titles run
logging:
  level: debug
observability:
  metrics_file: metrics.prom
`)

	cfg := Default()
	require.NoError(t, Load(path, cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/titles.tsv", cfg.Input.Path)
	assert.Equal(t, "out/cleaned.csv.zst", cfg.Output.Path)
	assert.Equal(t, "better", cfg.Output.Level)
	assert.Equal(t, "Weekly titles run", cfg.Summary.Title)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultSummaryPath, cfg.Summary.Path)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "metrics.prom", cfg.Observability.MetricsFile)
	assert.Empty(t, cfg.Observability.TraceFile)
}

func TestLoadErrors(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "absent.yaml"), Default())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	err = Load(testutil.WriteFile(t, "bad.yaml", "input: [1, 2"), Default())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Output.Compression = compression.Zstd
	cfg.Summary.JSONPath = "summary.json"

	path := filepath.Join(t.TempDir(), "titleclean.yaml")
	require.NoError(t, Save(path, cfg))

	loaded := &Config{}
	require.NoError(t, Load(path, loaded))
	assert.Equal(t, cfg, loaded)
}
