package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	xlsxsource "github.com/ajitpratap0/titleclean/pkg/connector/sources/xlsx"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/ajitpratap0/titleclean/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXRoundTrip(t *testing.T) {
	tbl := table.MustNew(
		table.Column{Name: "title", Type: table.TypeText},
		table.Column{Name: "release_year", Type: table.TypeInteger},
		table.Column{Name: "date_added_parsed", Type: table.TypeDate},
		table.Column{Name: "rating", Type: table.TypeText},
	)
	require.NoError(t, tbl.AppendRow(
		table.Text("Sankofa"), table.Int(1993),
		table.Date(time.Date(2021, 9, 24, 0, 0, 0, 0, time.UTC)), table.Text("TV-MA")))
	require.NoError(t, tbl.AppendRow(
		table.Text("Ganglands"), table.Missing(), table.NullDate(), table.Missing()))

	cfg := core.Config{Path: filepath.Join(t.TempDir(), "titles.xlsx"), Sheet: "titles"}
	dst, err := NewXLSXDestination(cfg, testutil.TestLogger(t))
	require.NoError(t, err)

	ctx, cancel := testutil.TestContext(t)
	defer cancel()
	require.NoError(t, dst.Write(ctx, tbl))

	f, err := excelize.OpenFile(cfg.Path)
	require.NoError(t, err)
	assert.Equal(t, []string{"titles"}, f.GetSheetList())
	require.NoError(t, f.Close())

	src, err := xlsxsource.NewXLSXSource(core.Config{Path: cfg.Path}, testutil.TestLogger(t))
	require.NoError(t, err)
	got, err := src.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, tbl.ColumnNames(), got.ColumnNames())
	assert.Equal(t, table.Shape{Rows: 2, Cols: 4}, got.Shape())
	col, _ := got.Column("release_year")
	assert.Equal(t, table.TypeInteger, col.Type)
	assert.Equal(t, "1993", got.Get(0, "release_year").String())
	assert.Equal(t, "2021-09-24", got.Get(0, "date_added_parsed").String())
	assert.True(t, got.Get(1, "release_year").IsMissing())
	assert.True(t, got.Get(1, "rating").IsMissing())
}

func TestXLSXDestinationRejectsCompression(t *testing.T) {
	_, err := NewXLSXDestination(core.Config{Path: "titles.xlsx.gz"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
