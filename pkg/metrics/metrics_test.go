package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsRun(t *testing.T) {
	c := NewCollector()

	c.SetShape(PhaseInput, table.Shape{Rows: 5, Cols: 12})
	c.SetShape(PhaseOutput, table.Shape{Rows: 4, Cols: 14})
	c.ObserveStage("dedup", StatusApplied, 2*time.Millisecond)
	c.ObserveStage("dates", StatusSkipped, 0)
	c.AddNotes(3)
	c.AddNotes(2)
	c.SetMemory("end", 1<<20)

	assert.Equal(t, 5.0, testutil.ToFloat64(c.tableRows.WithLabelValues(PhaseInput)))
	assert.Equal(t, 14.0, testutil.ToFloat64(c.tableColumns.WithLabelValues(PhaseOutput)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.stageRuns.WithLabelValues("dedup", StatusApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.stageRuns.WithLabelValues("dates", StatusSkipped)))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.notes))
	assert.Equal(t, float64(1<<20), testutil.ToFloat64(c.memory.WithLabelValues("end")))

	// skipped stages are not timed
	assert.Equal(t, 1, testutil.CollectAndCount(c.stageDuration))
}

func TestThroughputTracker(t *testing.T) {
	c := NewCollector()
	tracker := c.NewThroughputTracker("read", "csv")
	tracker.Increment(100)
	time.Sleep(5 * time.Millisecond)

	rate := tracker.GetAndReset()
	assert.Greater(t, rate, 0.0)
	assert.Equal(t, rate, testutil.ToFloat64(c.throughput.WithLabelValues("read", "csv")))
}

func TestWriteToTextfile(t *testing.T) {
	c := NewCollector()
	c.SetShape(PhaseOutput, table.Shape{Rows: 4, Cols: 14})
	c.Finish(time.Second)

	path := filepath.Join(t.TempDir(), "titleclean.prom")
	require.NoError(t, c.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `titleclean_table_rows{phase="output"} 4`)
	assert.Contains(t, string(data), "titleclean_run_duration_seconds 1")
}

func TestWriteToTextfileBadPath(t *testing.T) {
	c := NewCollector()
	err := c.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "titleclean.prom"))
	assert.Error(t, err)
}

func TestTimer(t *testing.T) {
	timer := NewTimer("stage")
	time.Sleep(time.Millisecond)
	assert.Equal(t, "stage", timer.Name())
	assert.GreaterOrEqual(t, timer.Stop(), time.Millisecond)
}
