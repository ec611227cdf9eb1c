// Package json provides the line-delimited JSON table source. Every line
// holds one flat object; columns appear in the order their keys are first
// seen and values go through the same NA handling and type inference as
// delimited files.
package json

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/ajitpratap0/titleclean/pkg/connector/compressed"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func init() {
	_ = registry.RegisterSource(core.FormatJSONL, NewJSONLSource)
}

// JSONLSource reads JSON Lines files into a table
type JSONLSource struct {
	config core.Config
	logger *zap.Logger
}

// NewJSONLSource creates a new JSON Lines source
func NewJSONLSource(config core.Config, logger *zap.Logger) (core.Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONLSource{
		config: config,
		logger: logger.With(zap.String("connector", "jsonl_source"), zap.String("path", config.Path)),
	}, nil
}

// Format implements core.Source
func (s *JSONLSource) Format() core.Format { return core.FormatJSONL }

// Load implements core.Source
func (s *JSONLSource) Load(ctx context.Context) (*table.Table, error) {
	r, err := compressed.Open(s.config)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var (
		header  []string
		columns = make(map[string]int)
		records [][]string
	)

	dec := json.NewDecoder(bufio.NewReader(r))
	dec.UseNumber()
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := decodeObject(dec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse JSON Lines file").
				WithDetail("path", s.config.Path).
				WithDetail("record", line)
		}

		record := make([]string, len(header))
		for _, f := range fields {
			i, ok := columns[f.key]
			if !ok {
				i = len(header)
				columns[f.key] = i
				header = append(header, f.key)
				record = append(record, "")
			}
			record[i] = f.value
		}
		records = append(records, record)
	}

	if len(header) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "no columns to parse from file").
			WithDetail("path", s.config.Path)
	}

	t, err := table.FromRecords(header, records)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded table", zap.Int("rows", t.NumRows()), zap.Int("columns", t.NumCols()))
	return t, nil
}

type field struct {
	key   string
	value string
}

// decodeObject reads one top-level object, keeping key order.
func decodeObject(dec *json.Decoder) ([]field, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Newf(errors.ErrorTypeData, "expected an object, found %v", tok)
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData, "expected an object key, found %v", tok)
		}
		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		value, err := cellText(raw)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// cellText renders a decoded JSON value as the raw cell string. null
// becomes "", which is read as missing.
func cellText(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
