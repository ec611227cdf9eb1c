// Package csv provides the delimited-text table source. It reads files
// the way pandas read_csv does with default options: the first row is
// the header, the usual NA tokens are missing values and column types are
// inferred from the content.
package csv

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/connector/compressed"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

func init() {
	_ = registry.RegisterSource(core.FormatCSV, NewCSVSource)
	_ = registry.RegisterSource(core.FormatTSV, NewCSVSource)
}

// CSVSource reads a comma or tab separated file into a table
type CSVSource struct {
	config core.Config
	format core.Format
	logger *zap.Logger
}

// NewCSVSource creates a new CSV source for csv and tsv files
func NewCSVSource(config core.Config, logger *zap.Logger) (core.Source, error) {
	format, _, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	if format != core.FormatCSV && format != core.FormatTSV {
		return nil, errors.Newf(errors.ErrorTypeConfig, "csv source cannot read %s files", format)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVSource{
		config: config,
		format: format,
		logger: logger.With(zap.String("connector", "csv_source"), zap.String("path", config.Path)),
	}, nil
}

// Format implements core.Source
func (s *CSVSource) Format() core.Format { return s.format }

// Load implements core.Source
func (s *CSVSource) Load(ctx context.Context) (*table.Table, error) {
	r, err := compressed.Open(s.config)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	if s.format == core.FormatTSV {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrorTypeData, "no columns to parse from file").
			WithDetail("path", s.config.Path)
	}
	if err != nil {
		return nil, wrapParseError(err, s.config.Path)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapParseError(err, s.config.Path)
		}
		records = append(records, row)
	}

	t, err := table.FromRecords(header, records)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "malformed table content").
			WithDetail("path", s.config.Path)
	}

	s.logger.Debug("loaded table", zap.Int("rows", t.NumRows()), zap.Int("columns", t.NumCols()))
	return t, nil
}

func wrapParseError(err error, path string) error {
	wrapped := errors.Wrap(err, errors.ErrorTypeData, "failed to parse delimited file").
		WithDetail("path", path)
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		wrapped = wrapped.WithDetail("line", perr.Line)
	}
	return wrapped
}
