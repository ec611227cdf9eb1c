package observability

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "titleclean"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitTracingWritesSpans(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	path := filepath.Join(t.TempDir(), "trace.json")
	shutdown, err := InitTracing(TracingConfig{
		ServiceName:    "titleclean",
		ServiceVersion: "test",
		Path:           path,
	})
	require.NoError(t, err)

	ctx, run := StartSpan(context.Background(), "run")
	_, stage := StartSpan(ctx, "stage.dedup")
	stage.SetAttribute("rows", 4)
	stage.SetAttribute("notes", []string{"Removed 1 duplicate rows."})
	stage.RecordError(nil)
	stage.End()
	run.RecordError(stderrors.New("boom"))
	run.End()

	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"Name":"stage.dedup"`)
	assert.Contains(t, content, `"Name":"run"`)
	assert.Contains(t, content, "Removed 1 duplicate rows.")
	assert.Contains(t, content, "boom")
	assert.Contains(t, content, "titleclean")
}

func TestInitTracingBadPath(t *testing.T) {
	_, err := InitTracing(TracingConfig{Path: filepath.Join(t.TempDir(), "missing", "trace.json")})
	assert.Error(t, err)
}

func TestResourceMonitor(t *testing.T) {
	rm, err := NewResourceMonitor()
	require.NoError(t, err)

	usage := rm.Usage()
	assert.Greater(t, usage.GoroutineCount, 0)
	assert.Len(t, usage.Fields(), 6)
}
