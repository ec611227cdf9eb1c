package cleaning

import (
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

// JunkColumns are the export artifacts dropped by the ColumnPruner.
var JunkColumns = []string{"Unnamed: 0", "index"}

// ColumnPruner drops known junk columns when present.
type ColumnPruner struct {
	columns []string
	logger  *zap.Logger
}

// NewColumnPruner creates a pruner for JunkColumns.
func NewColumnPruner(logger *zap.Logger) *ColumnPruner {
	return &ColumnPruner{columns: JunkColumns, logger: stageLogger(logger, "prune")}
}

// Name implements Stage
func (p *ColumnPruner) Name() string { return "prune" }

// Requires implements Stage
func (p *ColumnPruner) Requires() Requirement { return None }

// Apply implements Stage
func (p *ColumnPruner) Apply(t *table.Table) (*table.Table, []string, error) {
	var present []string
	for _, c := range p.columns {
		if t.Has(c) {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		p.logger.Debug("no junk columns present")
		return t, []string{"No unnecessary columns dropped."}, nil
	}

	p.logger.Debug("dropping junk columns", zap.Strings("columns", present))
	return t.DropColumns(present...),
		[]string{"Dropped unnecessary columns: " + strings.Join(present, ", ")}, nil
}
