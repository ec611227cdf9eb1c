package cleaning

import (
	"fmt"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

// Deduplicator removes rows identical to an earlier row across all
// columns, keeping first occurrences in their original order.
type Deduplicator struct {
	logger *zap.Logger
}

// NewDeduplicator creates a Deduplicator
func NewDeduplicator(logger *zap.Logger) *Deduplicator {
	return &Deduplicator{logger: stageLogger(logger, "dedup")}
}

// Name implements Stage
func (d *Deduplicator) Name() string { return "dedup" }

// Requires implements Stage
func (d *Deduplicator) Requires() Requirement { return None }

// Apply implements Stage
func (d *Deduplicator) Apply(t *table.Table) (*table.Table, []string, error) {
	seen := make(map[string]struct{}, t.NumRows())
	out := t.Filter(func(row []table.Value) bool {
		key := table.RowKey(row)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})

	removed := t.NumRows() - out.NumRows()
	d.logger.Debug("removed duplicate rows", zap.Int("removed", removed), zap.Int("remaining", out.NumRows()))
	return out, []string{fmt.Sprintf("Removed duplicate rows: %d rows.", removed)}, nil
}
