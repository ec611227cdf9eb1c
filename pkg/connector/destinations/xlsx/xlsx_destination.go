// Package xlsx provides the Excel workbook table destination.
package xlsx

import (
	"context"

	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DefaultSheet is the worksheet written when none is configured.
const DefaultSheet = "Sheet1"

func init() {
	_ = registry.RegisterDestination(core.FormatXLSX, NewXLSXDestination)
}

// XLSXDestination writes a table to a single worksheet
type XLSXDestination struct {
	config core.Config
	sheet  string
	logger *zap.Logger
}

// NewXLSXDestination creates a new workbook destination
func NewXLSXDestination(config core.Config, logger *zap.Logger) (core.Destination, error) {
	if _, _, err := config.Resolve(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sheet := config.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &XLSXDestination{
		config: config,
		sheet:  sheet,
		logger: logger.With(zap.String("connector", "xlsx_destination"), zap.String("path", config.Path)),
	}, nil
}

// Format implements core.Destination
func (d *XLSXDestination) Format() core.Format { return core.FormatXLSX }

// Write implements core.Destination
func (d *XLSXDestination) Write(ctx context.Context, t *table.Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			d.logger.Warn("failed to close workbook", zap.Error(cerr))
		}
	}()

	if d.sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, d.sheet); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, "invalid sheet name").
				WithDetail("sheet", d.sheet)
		}
	}

	header := make([]interface{}, t.NumCols())
	for j, name := range t.ColumnNames() {
		header[j] = name
	}
	if err := d.setRow(f, 1, header); err != nil {
		return err
	}

	row := make([]interface{}, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := range row {
			row[j] = cellValue(t.Cell(i, j))
		}
		if err := d.setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(d.config.Path); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to save workbook").
			WithDetail("path", d.config.Path)
	}
	d.logger.Debug("wrote table", zap.Int("rows", t.NumRows()), zap.Int("columns", t.NumCols()))
	return nil
}

func (d *XLSXDestination) setRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "invalid cell coordinates")
	}
	if err := f.SetSheetRow(d.sheet, cell, &values); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write sheet row").
			WithDetail("row", rowNum)
	}
	return nil
}

// cellValue leaves null markers as empty cells and writes dates as ISO
// text so they read back unchanged.
func cellValue(v table.Value) interface{} {
	switch v.Kind() {
	case table.KindText:
		s, _ := v.Text()
		return s
	case table.KindInt:
		n, _ := v.Int()
		return n
	case table.KindFloat:
		f, _ := v.Float()
		return f
	case table.KindDate:
		return v.String()
	default:
		return nil
	}
}
