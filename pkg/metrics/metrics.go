// Package metrics records the Prometheus metrics of a cleaning run.
//
// A batch run has nobody scraping it, so each Collector owns a private
// registry and the metrics are exported once at the end with
// WriteToTextfile, in the format read by node_exporter's textfile
// collector.
//
// # Basic Usage
//
//	collector := metrics.NewCollector()
//	timer := metrics.NewTimer("dedup")
//	out, notes, err := stage.Apply(t)
//	collector.ObserveStage("dedup", metrics.StatusApplied, timer.Stop())
//	collector.AddNotes(len(notes))
//	...
//	err = collector.WriteToTextfile("/var/lib/node_exporter/titleclean.prom")
package metrics

import (
	"sync"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "titleclean"

// Stage outcomes used as the status label.
const (
	StatusApplied = "applied"
	StatusSkipped = "skipped"
)

// Table phases used as the phase label.
const (
	PhaseInput  = "input"
	PhaseOutput = "output"
)

// Collector holds the metrics of one run.
type Collector struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec // Stage latency distribution
	stageRuns     *prometheus.CounterVec   // Stage outcomes
	tableRows     *prometheus.GaugeVec     // Rows per phase
	tableColumns  *prometheus.GaugeVec     // Columns per phase
	notes         prometheus.Counter       // Audit notes recorded
	memory        *prometheus.GaugeVec     // Resident memory per checkpoint
	throughput    *prometheus.GaugeVec     // Rows per second per endpoint
	runDuration   prometheus.Gauge         // Whole run wall time
	lastSuccess   prometheus.Gauge         // Completion timestamp
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Time spent in each cleaning stage",
				Buckets: []float64{
					1e-5, // 10μs - empty or tiny tables
					1e-4, // 100μs
					1e-3, // 1ms
					1e-2, // 10ms - typical titles export
					1e-1, // 100ms
					1,    // 1s - very large exports
				},
			},
			[]string{"stage"},
		),
		stageRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_runs_total",
				Help:      "Cleaning stages run, by outcome",
			},
			[]string{"stage", "status"},
		),
		tableRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "table_rows",
				Help:      "Rows in the table before and after cleaning",
			},
			[]string{"phase"},
		),
		tableColumns: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "table_columns",
				Help:      "Columns in the table before and after cleaning",
			},
			[]string{"phase"},
		),
		notes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_notes_total",
			Help:      "Audit notes recorded by the cleaning stages",
		}),
		memory: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "resident_memory_bytes",
				Help:      "Resident set size of the process at each checkpoint",
			},
			[]string{"checkpoint"},
		),
		throughput: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "throughput_rows_per_second",
				Help:      "Rows per second read or written",
			},
			[]string{"operation", "format"},
		),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the whole run",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished",
		}),
	}
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveStage records one stage outcome and, for applied stages, its
// duration.
func (c *Collector) ObserveStage(stage, status string, d time.Duration) {
	c.stageRuns.WithLabelValues(stage, status).Inc()
	if status == StatusApplied {
		c.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// SetShape records the table shape for a phase
func (c *Collector) SetShape(phase string, s table.Shape) {
	c.tableRows.WithLabelValues(phase).Set(float64(s.Rows))
	c.tableColumns.WithLabelValues(phase).Set(float64(s.Cols))
}

// AddNotes counts recorded audit notes
func (c *Collector) AddNotes(n int) {
	c.notes.Add(float64(n))
}

// SetMemory records the resident memory at a checkpoint
func (c *Collector) SetMemory(checkpoint string, bytes uint64) {
	c.memory.WithLabelValues(checkpoint).Set(float64(bytes))
}

// Finish records the run duration and marks the run successful.
func (c *Collector) Finish(d time.Duration) {
	c.runDuration.Set(d.Seconds())
	c.lastSuccess.SetToCurrentTime()
}

// WriteToTextfile writes every metric to path in the text exposition
// format. The file is replaced atomically.
func (c *Collector) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write metrics file").
			WithDetail("path", path)
	}
	return nil
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs or metrics.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the name the timer was created with
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. The timer can be
// stopped multiple times, each returning the total elapsed time.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// ThroughputTracker tracks rows per second for one read or write.
// Thread-safe for concurrent use.
type ThroughputTracker struct {
	mu        sync.Mutex
	count     int64     // Rows handled since last reset
	lastReset time.Time // Time of last reset
	operation string
	format    string
	gauge     *prometheus.GaugeVec
}

// NewThroughputTracker creates a tracker reporting to c. operation is
// "read" or "write" and format the table file format.
func (c *Collector) NewThroughputTracker(operation, format string) *ThroughputTracker {
	return &ThroughputTracker{
		lastReset: time.Now(),
		operation: operation,
		format:    format,
		gauge:     c.throughput,
	}
}

// Increment adds n to the row count. Safe for concurrent use.
func (t *ThroughputTracker) Increment(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count += n
}

// GetAndReset calculates the current throughput (rows/second),
// updates the Prometheus metric, resets the counter, and returns
// the calculated throughput. Safe for concurrent use.
func (t *ThroughputTracker) GetAndReset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.lastReset).Seconds()
	if elapsed == 0 {
		return 0
	}

	throughput := float64(t.count) / elapsed

	// Reset for next period
	t.count = 0
	t.lastReset = time.Now()

	t.gauge.WithLabelValues(t.operation, t.format).Set(throughput)

	return throughput
}
