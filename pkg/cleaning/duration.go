package cleaning

import (
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

// DefaultDuration replaces a missing duration before it is split.
const DefaultDuration = "0 min"

// DurationSplitter replaces the composite duration column ("93 min",
// "2 Seasons") with an integer duration_value and a lower-cased
// duration_unit, placed where duration was.
type DurationSplitter struct {
	logger *zap.Logger
}

// NewDurationSplitter creates a DurationSplitter
func NewDurationSplitter(logger *zap.Logger) *DurationSplitter {
	return &DurationSplitter{logger: stageLogger(logger, "duration")}
}

// Name implements Stage
func (d *DurationSplitter) Name() string { return "duration" }

// Requires implements Stage
func (d *DurationSplitter) Requires() Requirement {
	return Requirement{AllOf: []string{ColDuration}}
}

// Apply implements Stage
func (d *DurationSplitter) Apply(t *table.Table) (*table.Table, []string, error) {
	raw := t.ColumnValues(ColDuration)
	values := make([]table.Value, len(raw))
	units := make([]table.Value, len(raw))
	defaulted, nonNumeric := 0, 0

	for i, v := range raw {
		s := v.String()
		if v.IsNull() {
			s = DefaultDuration
			defaulted++
		}
		n, unit, ok := SplitDuration(s)
		if !ok {
			nonNumeric++
		}
		values[i] = table.Int(n)
		units[i] = unit
	}

	// Existing output columns are overwritten by the split.
	base := t.DropColumns(ColDurationValue, ColDurationUnit)
	out, err := base.Splice(ColDuration,
		[]table.Column{
			{Name: ColDurationValue, Type: table.TypeInteger},
			{Name: ColDurationUnit, Type: table.TypeText},
		},
		[][]table.Value{values, units})
	if err != nil {
		return nil, nil, err
	}

	d.logger.Debug("split duration",
		zap.Int("defaulted", defaulted),
		zap.Int("non_numeric", nonNumeric))
	return out, []string{
		"Cleaned 'duration' by splitting it into 'duration_value' (int) and 'duration_unit'.",
	}, nil
}

// SplitDuration splits s on single spaces. The first token is the value,
// truncated to an integer and 0 when it is not numeric (ok is false then).
// The second token, lower-cased, is the unit; without one the unit is the
// missing marker.
func SplitDuration(s string) (value int64, unit table.Value, ok bool) {
	tokens := strings.Split(s, " ")
	value, ok = table.ToInt(table.Text(tokens[0]))
	if !ok {
		value = 0
	}
	unit = table.Missing()
	if len(tokens) > 1 {
		unit = table.Text(strings.ToLower(tokens[1]))
	}
	return value, unit, ok
}
