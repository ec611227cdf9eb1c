// Package xlsx provides the Excel workbook table source.
package xlsx

import (
	"context"

	"github.com/ajitpratap0/titleclean/pkg/connector/compressed"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func init() {
	_ = registry.RegisterSource(core.FormatXLSX, NewXLSXSource)
}

// XLSXSource reads one worksheet of a workbook into a table. The first
// row of the sheet is the header.
type XLSXSource struct {
	config core.Config
	logger *zap.Logger
}

// NewXLSXSource creates a new workbook source
func NewXLSXSource(config core.Config, logger *zap.Logger) (core.Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSXSource{
		config: config,
		logger: logger.With(zap.String("connector", "xlsx_source"), zap.String("path", config.Path)),
	}, nil
}

// Format implements core.Source
func (s *XLSXSource) Format() core.Format { return core.FormatXLSX }

// Load implements core.Source
func (s *XLSXSource) Load(_ context.Context) (*table.Table, error) {
	r, err := compressed.Open(s.config)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open workbook").
			WithDetail("path", s.config.Path)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	sheet := s.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrorTypeData, "workbook has no sheets").
				WithDetail("path", s.config.Path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read sheet").
			WithDetail("path", s.config.Path).
			WithDetail("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "no columns to parse from sheet").
			WithDetail("path", s.config.Path).
			WithDetail("sheet", sheet)
	}

	t, err := table.FromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded table",
		zap.String("sheet", sheet),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()))
	return t, nil
}
