package cleaning

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

// TextColumns are the columns the TextNormalizer standardizes.
var TextColumns = []string{ColType, ColTitle, ColDirector, ColCast, ColCountry, ColListedIn, ColRating, ColDescription}

// missingLiterals are matched case-sensitively after trimming.
var missingLiterals = map[string]struct{}{"nan": {}, "none": {}, "": {}}

// TextNormalizer trims the text columns and turns empty-like strings into
// the missing marker. Only columns of text type are touched.
type TextNormalizer struct {
	columns []string
	logger  *zap.Logger
}

// NewTextNormalizer creates a normalizer for TextColumns.
func NewTextNormalizer(logger *zap.Logger) *TextNormalizer {
	return &TextNormalizer{columns: TextColumns, logger: stageLogger(logger, "text")}
}

// Name implements Stage
func (n *TextNormalizer) Name() string { return "text" }

// Requires implements Stage
func (n *TextNormalizer) Requires() Requirement { return None }

// Apply implements Stage
func (n *TextNormalizer) Apply(t *table.Table) (*table.Table, []string, error) {
	count := 0
	out := t
	for _, name := range n.columns {
		col, ok := out.Column(name)
		if !ok || col.Type != table.TypeText {
			continue
		}
		var err error
		out, err = out.MapColumn(name, table.TypeText, NormalizeText)
		if err != nil {
			return nil, nil, err
		}
		count++
	}

	n.logger.Debug("standardized text columns", zap.Int("columns", count))
	return out, []string{
		fmt.Sprintf("Standardized %d text columns (trimmed whitespace, normalized missings).", count),
	}, nil
}

// NormalizeText trims a value's textual form and maps "nan", "none" and
// "" to the missing marker. Markers stay missing.
func NormalizeText(v table.Value) table.Value {
	if v.IsNull() {
		return table.Missing()
	}
	s := strings.TrimSpace(v.String())
	if _, ok := missingLiterals[s]; ok {
		return table.Missing()
	}
	return table.Text(s)
}
