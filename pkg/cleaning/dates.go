package cleaning

import (
	"fmt"
	"strings"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/araddon/dateparse"
	"go.uber.org/zap"
)

// DDMMYYYYLayout is the layout of date_added_ddmmyyyy.
const DDMMYYYYLayout = "02-01-2006"

// DateNormalizer parses date_added leniently into date_added_parsed and
// a DD-MM-YYYY string column. date_added itself is kept.
type DateNormalizer struct {
	logger *zap.Logger
}

// NewDateNormalizer creates a DateNormalizer
func NewDateNormalizer(logger *zap.Logger) *DateNormalizer {
	return &DateNormalizer{logger: stageLogger(logger, "dates")}
}

// Name implements Stage
func (d *DateNormalizer) Name() string { return "dates" }

// Requires implements Stage
func (d *DateNormalizer) Requires() Requirement {
	return Requirement{AllOf: []string{ColDateAdded}}
}

// Apply implements Stage
func (d *DateNormalizer) Apply(t *table.Table) (*table.Table, []string, error) {
	raw := t.ColumnValues(ColDateAdded)
	parsed := make([]table.Value, len(raw))
	formatted := make([]table.Value, len(raw))
	failed, absent := 0, 0

	for i, v := range raw {
		if v.IsNull() {
			parsed[i] = table.Missing()
			formatted[i] = table.Missing()
			absent++
			continue
		}
		day, ok := ParseDate(v.String())
		if !ok {
			parsed[i] = table.NullDate()
			formatted[i] = table.Missing()
			failed++
			continue
		}
		parsed[i] = table.Date(day)
		formatted[i] = table.Text(day.Format(DDMMYYYYLayout))
	}

	out, err := t.WithColumn(table.Column{Name: ColDateParsed, Type: table.TypeDate}, parsed)
	if err != nil {
		return nil, nil, err
	}
	out, err = out.WithColumn(table.Column{Name: ColDateDDMMYYYY, Type: table.TypeText}, formatted)
	if err != nil {
		return nil, nil, err
	}

	d.logger.Debug("parsed date_added", zap.Int("failed", failed), zap.Int("absent", absent))
	note := fmt.Sprintf("Parsed 'date_added' into 'date_added_parsed' (datetime) and 'date_added_ddmmyyyy' (string). Failed to parse: %d entries.", failed)
	if absent > 0 {
		note += fmt.Sprintf(" Missing before parsing: %d entries.", absent)
	}
	return out, []string{note}, nil
}

// Dates outside these years are treated as unparseable.
// Fragments such as "1/2" or "9:" parse with year 0 and fall below it.
const (
	minDateYear = 1677
	maxDateYear = 2262
)

// ParseDate parses a human-readable date such as "September 9, 2019"
// after trimming surrounding whitespace.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	day, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	if y := day.Year(); y < minDateYear || y > maxDateYear {
		return time.Time{}, false
	}
	return day, true
}
