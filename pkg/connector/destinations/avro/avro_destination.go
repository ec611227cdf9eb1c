// Package avro provides the Avro object container file destination.
//
// Every column becomes a nullable field: text maps to string, integers to
// long, floats to double and dates to the date logical type. Compression is
// applied per block by the container itself, so a ".gz" suffix selects the
// deflate codec rather than wrapping the file in gzip.
package avro

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/compression"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"
	"go.uber.org/zap"
)

const (
	recordName = "Title"
	namespace  = "titleclean"
	batchSize  = 1000
)

func init() {
	_ = registry.RegisterDestination(core.FormatAvro, NewAvroDestination)
}

// AvroDestination writes a table as an Avro object container file
type AvroDestination struct {
	config          core.Config
	compressionName string
	logger          *zap.Logger
}

// NewAvroDestination creates a new Avro destination
func NewAvroDestination(config core.Config, logger *zap.Logger) (core.Destination, error) {
	_, alg, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	name, err := containerCodec(alg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvroDestination{
		config:          config,
		compressionName: name,
		logger:          logger.With(zap.String("connector", "avro_destination"), zap.String("path", config.Path)),
	}, nil
}

// Format implements core.Destination
func (d *AvroDestination) Format() core.Format { return core.FormatAvro }

// Write implements core.Destination
func (d *AvroDestination) Write(ctx context.Context, t *table.Table) (err error) {
	fields := FieldNames(t.ColumnNames())
	schema, err := Schema(t.Columns(), fields)
	if err != nil {
		return err
	}
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create Avro codec")
	}

	f, err := os.Create(d.config.Path)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create file").
			WithDetail("path", d.config.Path)
	}
	buf := bufio.NewWriter(f)
	defer func() {
		ferr := buf.Flush()
		if cerr := f.Close(); ferr == nil {
			ferr = cerr
		}
		if ferr != nil && err == nil {
			err = errors.Wrap(ferr, errors.ErrorTypeFile, "failed to close output file").
				WithDetail("path", d.config.Path)
		}
	}()

	ocf, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               buf,
		Codec:           codec,
		CompressionName: d.compressionName,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create Avro writer").
			WithDetail("path", d.config.Path)
	}

	columns := t.Columns()
	batch := make([]interface{}, 0, batchSize)
	for i := 0; i < t.NumRows(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		record := make(map[string]interface{}, len(columns))
		for j, col := range columns {
			record[fields[j]] = nativeValue(col.Type, t.Cell(i, j))
		}
		batch = append(batch, record)
		if len(batch) == batchSize {
			if err := ocf.Append(batch); err != nil {
				return d.appendError(err, i)
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := ocf.Append(batch); err != nil {
			return d.appendError(err, t.NumRows()-1)
		}
	}

	d.logger.Debug("wrote table",
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()),
		zap.String("codec", d.compressionName))
	return nil
}

func (d *AvroDestination) appendError(err error, row int) error {
	return errors.Wrap(err, errors.ErrorTypeFile, "failed to append Avro records").
		WithDetail("path", d.config.Path).
		WithDetail("row", row)
}

// containerCodec maps a compression algorithm to the block codec name of
// the container format.
func containerCodec(alg compression.Algorithm) (string, error) {
	switch alg {
	case compression.None:
		return goavro.CompressionNullLabel, nil
	case compression.Gzip:
		return goavro.CompressionDeflateLabel, nil
	case compression.Snappy:
		return goavro.CompressionSnappyLabel, nil
	case compression.Zstd:
		return goavro.CompressionZstandardLabel, nil
	default:
		return "", errors.Newf(errors.ErrorTypeConfig, "avro files do not support %s compression", alg)
	}
}

// avroType returns the non-null branch of a column's field type.
func avroType(typ table.ColumnType) interface{} {
	switch typ {
	case table.TypeInteger:
		return "long"
	case table.TypeFloat:
		return "double"
	case table.TypeDate:
		return map[string]string{"type": "int", "logicalType": "date"}
	default:
		return "string"
	}
}

// branchName is the union branch goavro expects for a column's values.
func branchName(typ table.ColumnType) string {
	switch typ {
	case table.TypeInteger:
		return "long"
	case table.TypeFloat:
		return "double"
	case table.TypeDate:
		return "int.date"
	default:
		return "string"
	}
}

// Schema builds the record schema for columns, using fields as the
// already sanitized field names.
func Schema(columns []table.Column, fields []string) (string, error) {
	type field struct {
		Name    string      `json:"name"`
		Type    interface{} `json:"type"`
		Default interface{} `json:"default"`
	}
	out := struct {
		Type      string  `json:"type"`
		Name      string  `json:"name"`
		Namespace string  `json:"namespace"`
		Fields    []field `json:"fields"`
	}{Type: "record", Name: recordName, Namespace: namespace}

	for i, col := range columns {
		out.Fields = append(out.Fields, field{
			Name: fields[i],
			Type: []interface{}{"null", avroType(col.Type)},
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode Avro schema")
	}
	return string(data), nil
}

func nativeValue(typ table.ColumnType, v table.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	branch := branchName(typ)
	switch v.Kind() {
	case table.KindInt:
		n, _ := v.Int()
		if typ == table.TypeFloat {
			return goavro.Union(branch, float64(n))
		}
		if typ == table.TypeInteger {
			return goavro.Union(branch, n)
		}
	case table.KindFloat:
		f, _ := v.Float()
		if typ == table.TypeFloat {
			return goavro.Union(branch, f)
		}
	case table.KindDate:
		d, _ := v.Date()
		if typ == table.TypeDate {
			return goavro.Union(branch, d)
		}
	}
	return goavro.Union("string", v.String())
}

// FieldNames turns column names into valid, unique Avro field names.
// Characters outside [A-Za-z0-9_] become underscores and a leading digit
// gets an underscore prefix.
func FieldNames(columns []string) []string {
	names := make([]string, len(columns))
	taken := make(map[string]bool, len(columns))
	for i, col := range columns {
		name := sanitize(col)
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		candidate := name
		for n := 2; taken[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		taken[candidate] = true
		names[i] = candidate
	}
	return names
}

func sanitize(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
