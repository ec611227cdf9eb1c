package pipeline

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/ajitpratap0/titleclean/pkg/cleaning"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/metrics"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/ajitpratap0/titleclean/pkg/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cleanedColumns = []string{
	"type", "title", "director", "cast", "country", "date_added", "release_year",
	"duration_value", "duration_unit", "rating", "listed_in", "description",
	"date_added_parsed", "date_added_ddmmyyyy",
}

func TestPipelineEndToEnd(t *testing.T) {
	input := testutil.NewTable(t, testutil.NetflixHeader, testutil.NetflixRows()...)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	out, summary, err := New(testutil.TestLogger(t)).Run(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, cleanedColumns, out.ColumnNames())
	assert.Equal(t, table.Shape{Rows: 4, Cols: 14}, out.Shape())

	assert.Equal(t, []string{
		"Dropped unnecessary columns: Unnamed: 0",
		"Removed duplicate rows: 1 rows.",
		"Standardized 8 text columns (trimmed whitespace, normalized missings).",
		"Replaced missing director with 'Not Available'.",
		"Replaced missing cast with 'Not Available'.",
		"Replaced missing country with 'Not Available'.",
		"Replaced missing rating with 'Not Rated'.",
		"Filled missing release_year with median: 2020",
		"Cleaned 'duration' by splitting it into 'duration_value' (int) and 'duration_unit'.",
		"Parsed 'date_added' into 'date_added_parsed' (datetime) and 'date_added_ddmmyyyy' (string). Failed to parse: 1 entries. Missing before parsing: 1 entries.",
		"Converted all column names to snake_case.",
	}, summary.Notes)
	assert.Empty(t, summary.Skipped)
	assert.Equal(t, table.Shape{Rows: 5, Cols: 12}, summary.OriginalShape)
	assert.Equal(t, out.Shape(), summary.FinalShape)
	assert.NotEmpty(t, summary.RunID)

	// row 2: blank director, padded title and an unparseable date
	assert.Equal(t, "Not Available", out.Get(1, "director").String())
	assert.Equal(t, "Blood & Water", out.Get(1, "title").String())
	assert.True(t, out.Get(1, "date_added_parsed").IsNullDate())
	assert.True(t, out.Get(1, "date_added_ddmmyyyy").IsMissing())
	assert.Equal(t, "garbage", out.Get(1, "date_added").String())

	assert.Equal(t, "90", out.Get(0, "duration_value").String())
	assert.Equal(t, "min", out.Get(0, "duration_unit").String())
	assert.Equal(t, "2", out.Get(2, "duration_value").String())
	assert.Equal(t, "seasons", out.Get(2, "duration_unit").String())

	assert.Equal(t, "2021-09-25", out.Get(0, "date_added_parsed").String())
	assert.Equal(t, "25-09-2021", out.Get(0, "date_added_ddmmyyyy").String())
	assert.Equal(t, "2020", out.Get(2, "release_year").String())
	assert.Equal(t, "Not Rated", out.Get(2, "rating").String())
	assert.Equal(t, "Not Available", out.Get(2, "country").String())

	// absent date: both derived columns are missing
	assert.True(t, out.Get(3, "date_added_parsed").IsMissing())

	for _, name := range out.ColumnNames() {
		assert.Equal(t, cleaning.SnakeCase(name), name)
	}
}

func TestPipelineDoesNotModifyInput(t *testing.T) {
	input := testutil.NewTable(t, testutil.NetflixHeader, testutil.NetflixRows()...)
	before := input.Clone()

	_, _, err := New(nil).Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, before.ColumnNames(), input.ColumnNames())
	require.Equal(t, before.NumRows(), input.NumRows())
	for i := 0; i < input.NumRows(); i++ {
		assert.Equal(t, table.RowKey(before.Row(i)), table.RowKey(input.Row(i)))
	}
}

func TestPipelineSkipsStagesWithoutColumns(t *testing.T) {
	input := testutil.NewTable(t, []string{"Title"}, []string{" Sankofa "}, []string{"Sankofa"})

	out, summary, err := New(testutil.TestLogger(t)).Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"title"}, out.ColumnNames())
	assert.Equal(t, 2, out.NumRows())
	assert.Equal(t, []string{
		"No unnecessary columns dropped.",
		"Removed duplicate rows: 0 rows.",
		"Standardized 0 text columns (trimmed whitespace, normalized missings).",
		"Converted all column names to snake_case.",
	}, summary.Notes)
	assert.Equal(t, []string{
		"Skipped fill: requires any of director, cast, country, rating, release_year.",
		"Skipped duration: requires duration.",
		"Skipped dates: requires date_added.",
	}, summary.Skipped)
}

func TestPipelineRecordsMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	input := testutil.NewTable(t, []string{"title"}, []string{"Sankofa"})

	_, _, err := New(nil, WithMetrics(collector)).Run(context.Background(), input)
	require.NoError(t, err)

	count, err := promtest.GatherAndCount(collector.Registry(), "titleclean_stage_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	count, err = promtest.GatherAndCount(collector.Registry(), "titleclean_stage_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

type failingStage struct{}

func (failingStage) Name() string                  { return "broken" }
func (failingStage) Requires() cleaning.Requirement { return cleaning.None }
func (failingStage) Apply(*table.Table) (*table.Table, []string, error) {
	return nil, nil, stderrors.New("column length mismatch")
}

func TestPipelineStageFailure(t *testing.T) {
	input := testutil.NewTable(t, []string{"title"}, []string{"Sankofa"})
	p := New(nil, WithStages(cleaning.NewColumnPruner(nil), failingStage{}))
	assert.Equal(t, []string{"prune", "broken"}, p.Stages())

	_, _, err := p.Run(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInternal))
	stage, ok := errors.Detail(err, "stage")
	assert.True(t, ok)
	assert.Equal(t, "broken", stage)
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := testutil.NewTable(t, []string{"title"}, []string{"Sankofa"})
	_, _, err := New(nil).Run(ctx, input)
	assert.ErrorIs(t, err, context.Canceled)
}
