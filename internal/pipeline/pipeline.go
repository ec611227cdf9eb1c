// Package pipeline runs the cleaning stages over a table and orchestrates
// a complete run from the input file to the cleaned table and summary.
//
// # Overview
//
// Stages run strictly in sequence, each receiving the table the previous
// one returned. Before a stage runs, its declared requirement is checked
// against the current table; a stage whose columns are absent is not
// invoked and a neutral skip entry is recorded instead of action notes.
//
// # Basic Usage
//
//	p := pipeline.New(logger)
//	cleaned, summary, err := p.Run(ctx, t)
//	fmt.Print(audit.RenderText(summary, ""))
package pipeline

import (
	"context"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/audit"
	"github.com/ajitpratap0/titleclean/pkg/cleaning"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/metrics"
	"github.com/ajitpratap0/titleclean/pkg/observability"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline applies an ordered list of cleaning stages to a table.
type Pipeline struct {
	stages    []cleaning.Stage   // Stages in execution order
	collector *metrics.Collector // Optional run metrics
	logger    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStages replaces the default stage list.
func WithStages(stages ...cleaning.Stage) Option {
	return func(p *Pipeline) {
		p.stages = stages
	}
}

// WithMetrics records stage outcomes and durations in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pipeline) {
		p.collector = c
	}
}

// New creates a pipeline running cleaning.Default stages unless an
// option says otherwise.
func New(logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{logger: logger.With(zap.String("component", "pipeline"))}
	for _, opt := range opts {
		opt(p)
	}
	if p.stages == nil {
		p.stages = cleaning.Default(logger)
	}
	return p
}

// Stages returns the stage names in execution order
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run applies every stage to t and returns the cleaned table with the
// summary of what was done. t itself is never modified.
//
// Run fails only when ctx is cancelled between stages or a stage reports
// a broken internal invariant; malformed cell values are never errors.
func (p *Pipeline) Run(ctx context.Context, t *table.Table) (*table.Table, *audit.Summary, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))

	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.End()
	span.SetAttribute("run_id", runID)

	timer := metrics.NewTimer("pipeline")
	startedAt := time.Now()
	recorder := audit.NewRecorder()
	original := t.Shape()

	logger.Info("starting pipeline",
		zap.Int("rows", original.Rows),
		zap.Int("columns", original.Cols),
		zap.Int("stages", len(p.stages)))

	current := t
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, nil, err
		}

		next, err := p.runStage(ctx, logger, recorder, stage, current)
		if err != nil {
			span.RecordError(err)
			return nil, nil, err
		}
		current = next
	}

	summary := recorder.Summary(runID, original, current.Shape(), startedAt, timer.Stop())
	span.SetAttribute("notes", len(summary.Notes))
	span.SetAttribute("skipped", len(summary.Skipped))
	span.SetAttribute("final_shape", summary.FinalShape.String())

	logger.Info("pipeline completed",
		zap.Int("rows", summary.FinalShape.Rows),
		zap.Int("columns", summary.FinalShape.Cols),
		zap.Int("notes", len(summary.Notes)),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Duration("duration", summary.Duration))

	return current, summary, nil
}

func (p *Pipeline) runStage(ctx context.Context, logger *zap.Logger, recorder *audit.Recorder, stage cleaning.Stage, t *table.Table) (*table.Table, error) {
	name := stage.Name()

	if !stage.Requires().Satisfied(t) {
		note := cleaning.SkipNote(stage)
		recorder.Skip(name, note)
		if p.collector != nil {
			p.collector.ObserveStage(name, metrics.StatusSkipped, 0)
		}
		logger.Debug("stage skipped", zap.String("stage", name), zap.String("reason", note))
		return t, nil
	}

	_, span := observability.StartSpan(ctx, "stage."+name)
	defer span.End()

	timer := metrics.NewTimer(name)
	out, notes, err := stage.Apply(t)
	elapsed := timer.Stop()
	if err != nil {
		wrapped := errors.Wrap(err, errors.ErrorTypeInternal, "cleaning stage failed").
			WithDetail("stage", name)
		span.RecordError(wrapped)
		return nil, wrapped
	}

	recorder.Record(name, notes...)
	if p.collector != nil {
		p.collector.ObserveStage(name, metrics.StatusApplied, elapsed)
		p.collector.AddNotes(len(notes))
	}

	span.SetAttribute("rows", out.NumRows())
	span.SetAttribute("columns", out.NumCols())
	span.SetAttribute("notes", notes)
	logger.Debug("stage completed",
		zap.String("stage", name),
		zap.Int("rows", out.NumRows()),
		zap.Int("columns", out.NumCols()),
		zap.Strings("notes", notes),
		zap.Duration("duration", elapsed))

	return out, nil
}
