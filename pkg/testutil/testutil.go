// Package testutil provides testing utilities for titleclean
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// NetflixHeader is the column set of the titles export, including the
// leading index column pandas writes.
var NetflixHeader = []string{
	"Unnamed: 0", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "duration", "rating", "listed_in", "description",
}

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// NewTable builds a table from raw strings the way a CSV load would:
// NA tokens become missing and column types are inferred.
func NewTable(t *testing.T, header []string, rows ...[]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(header, rows)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return tbl
}

// NetflixRows returns the five-row sample used by end-to-end tests. Row 3
// repeats row 1 apart from the index column, row 2 has a blank director
// and an unparseable date, and row 5 has no date at all.
func NetflixRows() [][]string {
	first := []string{"Movie", "Dick Johnson Is Dead", "Kirsten Johnson", "", "United States",
		"September 25, 2021", "2020", "90 min", "PG-13", "Documentaries", "A film about a father."}
	return [][]string{
		append([]string{"0"}, first...),
		{"1", "TV Show", " Blood & Water ", "", "Ama Qamata, Khosi Ngema", "South Africa",
			"garbage", "2021", "1 Season", "TV-MA", "International TV Shows", "After crossing paths."},
		append([]string{"2"}, first...),
		{"3", "TV Show", "Ganglands", "Julien Leclercq", "Sami Bouajila", "nan",
			"September 24, 2021", "unknown", "2 Seasons", "", "Crime TV Shows", "To protect his family."},
		{"4", "Movie", "Sankofa", "Haile Gerima", "Kofi Ghanaba", "United States",
			"", "1993", "125 min", "TV-MA", "Dramas", "On a photo shoot in Ghana."},
	}
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
