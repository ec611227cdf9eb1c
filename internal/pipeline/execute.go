package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/audit"
	"github.com/ajitpratap0/titleclean/pkg/config"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/metrics"
	"github.com/ajitpratap0/titleclean/pkg/observability"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"go.uber.org/zap"

	// Register every table format
	_ "github.com/ajitpratap0/titleclean/pkg/connector/destinations"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/sources"
)

// Result describes the artifacts of a completed run. Paths are absolute;
// optional artifacts that were not written are empty.
type Result struct {
	Summary     *audit.Summary
	OutputPath  string
	SummaryPath string
	JSONPath    string
	MetricsPath string
}

// Execute performs a whole run: it loads cfg.Input, cleans it, writes the
// cleaned table to cfg.Output and the summary to cfg.Summary.
//
// A missing input file is reported as an ErrorTypeNotFound error before
// anything else happens, so no artifact is written in that case.
func Execute(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := CheckInput(cfg.Input); err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "titleclean.execute")
	defer span.End()

	started := time.Now()
	collector := metrics.NewCollector()
	monitor, err := observability.NewResourceMonitor()
	if err != nil {
		logger.Warn("resource monitoring unavailable", zap.Error(err))
	}

	input, err := Load(ctx, cfg.Input, logger, collector)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	collector.SetShape(metrics.PhaseInput, input.Shape())
	LogProfile(logger, table.Profile(input))
	sampleMemory(logger, collector, monitor, "loaded")

	cleaned, summary, err := New(logger, WithMetrics(collector)).Run(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	collector.SetShape(metrics.PhaseOutput, cleaned.Shape())
	sampleMemory(logger, collector, monitor, "cleaned")

	if err := write(ctx, cfg.Output, cleaned, logger, collector); err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &Result{
		Summary:     summary,
		OutputPath:  absPath(cfg.Output.Path),
		SummaryPath: absPath(cfg.Summary.Path),
	}
	if err := audit.WriteText(cfg.Summary.Path, summary, cfg.Summary.Title); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if cfg.Summary.JSONPath != "" {
		if err := audit.WriteJSON(cfg.Summary.JSONPath, summary); err != nil {
			span.RecordError(err)
			return nil, err
		}
		result.JSONPath = absPath(cfg.Summary.JSONPath)
	}

	collector.Finish(time.Since(started))
	if path := cfg.Observability.MetricsFile; path != "" {
		if err := collector.WriteToTextfile(path); err != nil {
			span.RecordError(err)
			return nil, err
		}
		result.MetricsPath = absPath(path)
	}

	span.SetAttribute("run_id", summary.RunID)
	span.SetAttribute("output", result.OutputPath)
	logger.Info("cleaning complete",
		zap.String("run_id", summary.RunID),
		zap.Int("rows", summary.FinalShape.Rows),
		zap.Int("columns", summary.FinalShape.Cols),
		zap.String("output", result.OutputPath),
		zap.String("summary", result.SummaryPath),
		zap.Duration("duration", time.Since(started)))

	return result, nil
}

// CheckInput reports an ErrorTypeNotFound error carrying the absolute path
// when the input file does not exist.
func CheckInput(input core.Config) error {
	_, err := os.Stat(input.Path)
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrorTypeNotFound, "input file not found").
			WithDetail("path", absPath(input.Path))
	}
	return errors.Wrap(err, errors.ErrorTypeFile, "cannot access input file").
		WithDetail("path", absPath(input.Path))
}

// Load reads the configured input table. collector may be nil.
func Load(ctx context.Context, input core.Config, logger *zap.Logger, collector *metrics.Collector) (*table.Table, error) {
	ctx, span := observability.StartSpan(ctx, "table.load")
	defer span.End()

	src, err := registry.CreateSource(input, logger)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var tracker *metrics.ThroughputTracker
	if collector != nil {
		tracker = collector.NewThroughputTracker("read", string(src.Format()))
	}

	t, err := src.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if tracker != nil {
		tracker.Increment(int64(t.NumRows()))
		tracker.GetAndReset()
	}
	span.SetAttribute("format", string(src.Format()))
	span.SetAttribute("rows", t.NumRows())
	logger.Info("loaded input",
		zap.String("path", absPath(input.Path)),
		zap.String("format", string(src.Format())),
		zap.String("shape", t.Shape().String()))
	return t, nil
}

func write(ctx context.Context, output core.Config, t *table.Table, logger *zap.Logger, collector *metrics.Collector) error {
	ctx, span := observability.StartSpan(ctx, "table.write")
	defer span.End()

	dst, err := registry.CreateDestination(output, logger)
	if err != nil {
		span.RecordError(err)
		return err
	}

	tracker := collector.NewThroughputTracker("write", string(dst.Format()))
	if err := dst.Write(ctx, t); err != nil {
		span.RecordError(err)
		return err
	}
	tracker.Increment(int64(t.NumRows()))
	tracker.GetAndReset()

	span.SetAttribute("format", string(dst.Format()))
	span.SetAttribute("rows", t.NumRows())
	return nil
}

// LogProfile logs one line per column describing the input table.
func LogProfile(logger *zap.Logger, profile []table.ColumnProfile) {
	for _, p := range profile {
		logger.Info("column profile",
			zap.String("column", p.Name),
			zap.String("type", p.Type),
			zap.Int("missing", p.Missing),
			zap.Int("distinct", p.Cardinality))
	}
}

func sampleMemory(logger *zap.Logger, collector *metrics.Collector, monitor *observability.ResourceMonitor, checkpoint string) {
	if monitor == nil {
		return
	}
	usage := monitor.Usage()
	collector.SetMemory(checkpoint, usage.MemoryRSS)
	logger.Debug("resource usage", append(usage.Fields(), zap.String("checkpoint", checkpoint))...)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
