package cleaning

import (
	"strconv"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

var snakeReplacer = strings.NewReplacer(" ", "_", ".", "", "-", "")

// ColumnRenamer converts every column name to snake_case.
type ColumnRenamer struct {
	logger *zap.Logger
}

// NewColumnRenamer creates a ColumnRenamer
func NewColumnRenamer(logger *zap.Logger) *ColumnRenamer {
	return &ColumnRenamer{logger: stageLogger(logger, "rename")}
}

// Name implements Stage
func (r *ColumnRenamer) Name() string { return "rename" }

// Requires implements Stage
func (r *ColumnRenamer) Requires() Requirement { return None }

// Apply implements Stage
func (r *ColumnRenamer) Apply(t *table.Table) (*table.Table, []string, error) {
	original := t.ColumnNames()
	names := SnakeCaseNames(original, func(i int, name string) {
		r.logger.Warn("column name collision after snake_case conversion",
			zap.String("column", original[i]),
			zap.String("renamed_to", name))
	})

	out, err := t.RenameColumns(names)
	if err != nil {
		return nil, nil, err
	}
	return out, []string{"Converted all column names to snake_case."}, nil
}

// SnakeCase trims name, lower-cases it, turns spaces into underscores and
// deletes periods and hyphens.
func SnakeCase(name string) string {
	return snakeReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// SnakeCaseNames converts names with SnakeCase, keeping them unique. The
// first column to produce a name keeps it; later ones get the smallest
// "_2", "_3", ... suffix not otherwise in use, and onCollision is called
// with their position and new name. A name that converts to "" becomes
// "column_<position>".
func SnakeCaseNames(names []string, onCollision func(i int, name string)) []string {
	out := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	for i, n := range names {
		out[i] = SnakeCase(n)
		if out[i] == "" {
			out[i] = "column_" + strconv.Itoa(i)
		}
		taken[out[i]] = true
	}

	assigned := make(map[string]bool, len(names))
	for i, n := range out {
		if !assigned[n] {
			assigned[n] = true
			continue
		}
		k := 2
		candidate := n + "_" + strconv.Itoa(k)
		for taken[candidate] {
			k++
			candidate = n + "_" + strconv.Itoa(k)
		}
		taken[candidate] = true
		assigned[candidate] = true
		out[i] = candidate
		if onCollision != nil {
			onCollision(i, candidate)
		}
	}
	return out
}
