// Package json provides the JSON Lines table destination. Each row is one
// object whose keys follow the column order.
package json

import (
	"bufio"
	"context"

	"github.com/ajitpratap0/titleclean/pkg/connector/compressed"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/pool"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func init() {
	_ = registry.RegisterDestination(core.FormatJSONL, NewJSONLDestination)
}

// JSONLDestination writes a table as JSON Lines
type JSONLDestination struct {
	config core.Config
	logger *zap.Logger
}

// NewJSONLDestination creates a new JSON Lines destination
func NewJSONLDestination(config core.Config, logger *zap.Logger) (core.Destination, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONLDestination{
		config: config,
		logger: logger.With(zap.String("connector", "jsonl_destination"), zap.String("path", config.Path)),
	}, nil
}

// Format implements core.Destination
func (d *JSONLDestination) Format() core.Format { return core.FormatJSONL }

// Write implements core.Destination
func (d *JSONLDestination) Write(ctx context.Context, t *table.Table) (err error) {
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

	keys := make([][]byte, t.NumCols())
	for j, name := range t.ColumnNames() {
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[j] = k
	}

	buf := bufio.NewWriter(w)
	line := pool.GetBytes()
	defer pool.PutBytes(line)
	for i := 0; i < t.NumRows(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		*line, err = appendRow((*line)[:0], keys, t, i)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "failed to encode row").
				WithDetail("row", i)
		}
		if _, err := buf.Write(*line); err != nil {
			return d.writeError(err)
		}
	}
	if err := buf.Flush(); err != nil {
		return d.writeError(err)
	}

	d.logger.Debug("wrote table", zap.Int("rows", t.NumRows()), zap.Int("columns", t.NumCols()))
	return nil
}

// appendRow encodes row i as an object terminated by a newline.
func appendRow(dst []byte, keys [][]byte, t *table.Table, i int) ([]byte, error) {
	dst = append(dst, '{')
	for j, key := range keys {
		if j > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, key...)
		dst = append(dst, ':')
		v, err := json.Marshal(nativeValue(t.Cell(i, j)))
		if err != nil {
			return nil, err
		}
		dst = append(dst, v...)
	}
	return append(dst, '}', '\n'), nil
}

// nativeValue maps a cell to the value encoded for it. Null markers become
// JSON null and dates their ISO text.
func nativeValue(v table.Value) interface{} {
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

func (d *JSONLDestination) writeError(err error) error {
	return errors.Wrap(err, errors.ErrorTypeFile, "failed to write JSON Lines file").
		WithDetail("path", d.config.Path)
}
