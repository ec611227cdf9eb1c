package cleaning

import (
	"fmt"
	"math"
	"sort"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

// TextFill is a fill policy for a text column.
type TextFill struct {
	Column string
	Value  string
}

// TextFills are applied in order by the MissingValueFiller.
var TextFills = []TextFill{
	{Column: ColDirector, Value: "Not Available"},
	{Column: ColCast, Value: "Not Available"},
	{Column: ColCountry, Value: "Not Available"},
	{Column: ColRating, Value: "Not Rated"},
}

// MissingValueFiller fills the text columns with fixed placeholders and
// imputes release_year with the median year.
type MissingValueFiller struct {
	fills  []TextFill
	logger *zap.Logger
}

// NewMissingValueFiller creates a filler for TextFills and release_year.
func NewMissingValueFiller(logger *zap.Logger) *MissingValueFiller {
	return &MissingValueFiller{fills: TextFills, logger: stageLogger(logger, "fill")}
}

// Name implements Stage
func (f *MissingValueFiller) Name() string { return "fill" }

// Requires implements Stage
func (f *MissingValueFiller) Requires() Requirement {
	return Requirement{AnyOf: []string{ColDirector, ColCast, ColCountry, ColRating, ColReleaseYear}}
}

// Apply implements Stage
func (f *MissingValueFiller) Apply(t *table.Table) (*table.Table, []string, error) {
	var notes []string
	out := t
	for _, fill := range f.fills {
		if !out.Has(fill.Column) {
			continue
		}
		value := fill.Value
		filled := 0
		var err error
		out, err = out.MapColumn(fill.Column, table.TypeText, func(v table.Value) table.Value {
			if v.IsNull() {
				filled++
				return table.Text(value)
			}
			if s, ok := v.Text(); ok {
				return table.Text(s)
			}
			return table.Text(v.String())
		})
		if err != nil {
			return nil, nil, err
		}
		f.logger.Debug("filled missing values", zap.String("column", fill.Column), zap.Int("filled", filled))
		notes = append(notes, fmt.Sprintf("Replaced missing %s with '%s'.", fill.Column, value))
	}

	if out.Has(ColReleaseYear) {
		var note string
		var err error
		out, note, err = f.imputeReleaseYear(out)
		if err != nil {
			return nil, nil, err
		}
		if note != "" {
			notes = append(notes, note)
		}
	}
	return out, notes, nil
}

// imputeReleaseYear coerces release_year to integers, sending anything
// non-numeric to missing, and fills the gaps with the floored median of
// the numeric values.
func (f *MissingValueFiller) imputeReleaseYear(t *table.Table) (*table.Table, string, error) {
	raw := t.ColumnValues(ColReleaseYear)
	values := make([]table.Value, len(raw))
	numbers := make([]float64, 0, len(raw))
	missing := 0

	for i, v := range raw {
		n, ok := table.ToNumber(v)
		year, inRange := table.ToInt(n)
		if !ok || !inRange {
			values[i] = table.Missing()
			missing++
			continue
		}
		if fv, isFloat := n.Float(); isFloat {
			numbers = append(numbers, fv)
		} else {
			numbers = append(numbers, float64(year))
		}
		values[i] = table.Int(year)
	}

	col := table.Column{Name: ColReleaseYear, Type: table.TypeInteger}
	if missing == 0 {
		out, err := t.WithColumn(col, values)
		return out, "", err
	}

	if len(numbers) == 0 {
		f.logger.Warn("release_year has no numeric values; leaving it missing",
			zap.Int("missing", missing))
		out, err := t.WithColumn(col, values)
		return out, "Could not impute release_year: no numeric values present.", err
	}

	sort.Float64s(numbers)
	median := int64(math.Floor(table.Median(numbers)))
	for i, v := range values {
		if v.IsMissing() {
			values[i] = table.Int(median)
		}
	}
	f.logger.Debug("imputed release_year", zap.Int64("median", median), zap.Int("filled", missing))

	out, err := t.WithColumn(col, values)
	return out, fmt.Sprintf("Filled missing release_year with median: %d", median), err
}
