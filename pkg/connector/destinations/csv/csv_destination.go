// Package csv provides the delimited-text table destination. The header
// row carries the column names; null markers are written as empty
// fields, floats keep a decimal point and dates use the ISO layout.
package csv

import (
	"context"
	"encoding/csv"

	"github.com/ajitpratap0/titleclean/pkg/connector/compressed"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

func init() {
	_ = registry.RegisterDestination(core.FormatCSV, NewCSVDestination)
	_ = registry.RegisterDestination(core.FormatTSV, NewCSVDestination)
}

// CSVDestination writes a table as comma or tab separated text
type CSVDestination struct {
	config core.Config
	format core.Format
	logger *zap.Logger
}

// NewCSVDestination creates a new CSV destination for csv and tsv files
func NewCSVDestination(config core.Config, logger *zap.Logger) (core.Destination, error) {
	format, _, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	if format != core.FormatCSV && format != core.FormatTSV {
		return nil, errors.Newf(errors.ErrorTypeConfig, "csv destination cannot write %s files", format)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVDestination{
		config: config,
		format: format,
		logger: logger.With(zap.String("connector", "csv_destination"), zap.String("path", config.Path)),
	}, nil
}

// Format implements core.Destination
func (d *CSVDestination) Format() core.Format { return d.format }

// Write implements core.Destination
func (d *CSVDestination) Write(ctx context.Context, t *table.Table) (err error) {
	w, err := compressed.Create(d.config)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, errors.ErrorTypeFile, "failed to close output file").
				WithDetail("path", d.config.Path)
		}
	}()

	writer := csv.NewWriter(w)
	if d.format == core.FormatTSV {
		writer.Comma = '\t'
	}

	if err := writer.Write(t.ColumnNames()); err != nil {
		return d.writeError(err)
	}
	record := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := range record {
			record[j] = t.Cell(i, j).String()
		}
		if err := writer.Write(record); err != nil {
			return d.writeError(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return d.writeError(err)
	}

	d.logger.Debug("wrote table", zap.Int("rows", t.NumRows()), zap.Int("columns", t.NumCols()))
	return nil
}

func (d *CSVDestination) writeError(err error) error {
	return errors.Wrap(err, errors.ErrorTypeFile, "failed to write delimited file").
		WithDetail("path", d.config.Path)
}
