// Package cleaning implements the cleaning stages applied to the titles
// table. Each stage is a pure function of its input table: it returns a
// new table plus the audit notes describing what it did, and never
// modifies the table it was given.
//
// Stages never fail on bad cell values. Anything malformed is turned into
// the missing or null-date marker and counted in the notes.
package cleaning

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
)

// Column names the stages work on.
const (
	ColType        = "type"
	ColTitle       = "title"
	ColDirector    = "director"
	ColCast        = "cast"
	ColCountry     = "country"
	ColDateAdded   = "date_added"
	ColReleaseYear = "release_year"
	ColRating      = "rating"
	ColDuration    = "duration"
	ColListedIn    = "listed_in"
	ColDescription = "description"

	ColDurationValue = "duration_value"
	ColDurationUnit  = "duration_unit"
	ColDateParsed    = "date_added_parsed"
	ColDateDDMMYYYY  = "date_added_ddmmyyyy"
)

// Stage is one step of the cleaning pipeline.
type Stage interface {
	// Name identifies the stage in logs, traces and skip entries.
	Name() string
	// Requires lists the columns that must be present for the stage to run.
	Requires() Requirement
	// Apply returns the transformed table and the notes describing the
	// change. An error means an internal invariant was broken, never bad data.
	Apply(t *table.Table) (*table.Table, []string, error)
}

// Requirement is a stage precondition on the column set. Every AllOf
// column and, if AnyOf is non-empty, at least one AnyOf column must exist.
type Requirement struct {
	AllOf []string
	AnyOf []string
}

// None is the requirement of stages that run on any table.
var None = Requirement{}

// Satisfied reports whether t meets the requirement.
func (r Requirement) Satisfied(t *table.Table) bool {
	for _, c := range r.AllOf {
		if !t.Has(c) {
			return false
		}
	}
	if len(r.AnyOf) == 0 {
		return true
	}
	for _, c := range r.AnyOf {
		if t.Has(c) {
			return true
		}
	}
	return false
}

// String describes the requirement for skip entries.
func (r Requirement) String() string {
	var parts []string
	if len(r.AllOf) > 0 {
		parts = append(parts, strings.Join(r.AllOf, ", "))
	}
	if len(r.AnyOf) > 0 {
		parts = append(parts, "any of "+strings.Join(r.AnyOf, ", "))
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " and ")
}

// SkipNote is the neutral entry recorded for a stage whose requirement is unmet.
func SkipNote(s Stage) string {
	return fmt.Sprintf("Skipped %s: requires %s.", s.Name(), s.Requires())
}

// Default returns the cleaning stages in execution order. The renamer is
// last because every earlier stage refers to columns by their input names.
func Default(logger *zap.Logger) []Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return []Stage{
		NewColumnPruner(logger),
		NewDeduplicator(logger),
		NewTextNormalizer(logger),
		NewMissingValueFiller(logger),
		NewDurationSplitter(logger),
		NewDateNormalizer(logger),
		NewColumnRenamer(logger),
	}
}

func stageLogger(logger *zap.Logger, name string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("stage", name))
}
