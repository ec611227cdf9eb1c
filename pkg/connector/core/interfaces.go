// Package core defines the interfaces shared by table sources and
// destinations and the configuration they are created from.
package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/compression"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
)

// ConnectorType represents the type of connector
type ConnectorType string

const (
	ConnectorTypeSource      ConnectorType = "source"
	ConnectorTypeDestination ConnectorType = "destination"
)

// Format names a table file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
	FormatXLSX  Format = "xlsx"
	FormatJSONL Format = "jsonl"
	FormatAvro  Format = "avro"
)

var extensions = map[string]Format{
	".csv":    FormatCSV,
	".tsv":    FormatTSV,
	".xlsx":   FormatXLSX,
	".jsonl":  FormatJSONL,
	".ndjson": FormatJSONL,
	".avro":   FormatAvro,
}

// Source loads a whole table.
type Source interface {
	// Load reads the configured file into a table.
	Load(ctx context.Context) (*table.Table, error)
	// Format returns the file format the source reads.
	Format() Format
}

// Destination writes a whole table.
type Destination interface {
	// Write serializes t to the configured file, replacing its content.
	Write(ctx context.Context, t *table.Table) error
	// Format returns the file format the destination writes.
	Format() Format
}

// Config configures a source or destination.
type Config struct {
	// Path of the file. A compression suffix such as ".gz" is honored.
	Path string `yaml:"path" json:"path" validate:"required"`
	// Format overrides the format detected from Path.
	Format Format `yaml:"format,omitempty" json:"format,omitempty" validate:"omitempty,oneof=csv tsv xlsx jsonl avro"`
	// Compression overrides the codec detected from Path.
	Compression compression.Algorithm `yaml:"compression,omitempty" json:"compression,omitempty" validate:"omitempty,oneof=none gzip snappy lz4 zstd s2"`
	// Level is the compression level name: fastest, default, better or best.
	Level string `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,oneof=fastest default better best"`
	// Sheet is the worksheet used by xlsx files. Empty means the first sheet.
	Sheet string `yaml:"sheet,omitempty" json:"sheet,omitempty"`
}

// Resolve returns the format and compression algorithm of the config,
// detecting each from the path unless it is set explicitly.
func (c Config) Resolve() (Format, compression.Algorithm, error) {
	alg, base := compression.FromPath(c.Path)
	if c.Compression != "" {
		alg = c.Compression
	}

	format := c.Format
	if format == "" {
		var ok bool
		format, ok = extensions[strings.ToLower(filepath.Ext(base))]
		if !ok {
			return "", "", errors.Newf(errors.ErrorTypeConfig, "cannot detect table format of %q", c.Path).
				WithDetail("path", c.Path)
		}
	}
	if format == FormatXLSX && alg != compression.None {
		return "", "", errors.Newf(errors.ErrorTypeConfig, "xlsx files cannot be compressed (%s)", alg)
	}
	return format, alg, nil
}

// CompressionLevel parses the configured level.
func (c Config) CompressionLevel() (compression.Level, error) {
	return compression.ParseLevel(c.Level)
}
