package avro

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/ajitpratap0/titleclean/pkg/testutil"
	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldNames(t *testing.T) {
	names := FieldNames([]string{"show_id", "date added", "2nd", "date-added", "", "é"})
	assert.Equal(t, []string{"show_id", "date_added", "_2nd", "date_added_2", "column_4", "_"}, names)
}

func TestAvroDestinationWrite(t *testing.T) {
	added := time.Date(2021, 9, 25, 0, 0, 0, 0, time.UTC)
	tbl := table.MustNew(
		table.Column{Name: "title", Type: table.TypeText},
		table.Column{Name: "release_year", Type: table.TypeInteger},
		table.Column{Name: "score", Type: table.TypeFloat},
		table.Column{Name: "date_added_parsed", Type: table.TypeDate},
		table.Column{Name: "empty", Type: table.TypeMissing},
	)
	require.NoError(t, tbl.AppendRow(
		table.Text("Sankofa"), table.Int(1993), table.Float(7.5), table.Date(added), table.Missing()))
	require.NoError(t, tbl.AppendRow(
		table.Missing(), table.Missing(), table.Missing(), table.NullDate(), table.Missing()))

	for _, name := range []string{"out.avro", "out.avro.gz", "out.avro.sz", "out.avro.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			dst, err := NewAvroDestination(core.Config{Path: path}, testutil.TestLogger(t))
			require.NoError(t, err)

			ctx, cancel := testutil.TestContext(t)
			defer cancel()
			require.NoError(t, dst.Write(ctx, tbl))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			reader, err := goavro.NewOCFReader(f)
			require.NoError(t, err)

			var records []map[string]interface{}
			for reader.Scan() {
				datum, err := reader.Read()
				require.NoError(t, err)
				records = append(records, datum.(map[string]interface{}))
			}
			require.NoError(t, reader.Err())
			require.Len(t, records, 2)

			first := records[0]
			assert.Equal(t, map[string]interface{}{"string": "Sankofa"}, first["title"])
			assert.Equal(t, map[string]interface{}{"long": int64(1993)}, first["release_year"])
			assert.Equal(t, map[string]interface{}{"double": 7.5}, first["score"])
			date := first["date_added_parsed"].(map[string]interface{})["int.date"].(time.Time)
			assert.True(t, added.Equal(date))
			assert.Nil(t, first["empty"])

			for _, v := range records[1] {
				assert.Nil(t, v)
			}
		})
	}
}

func TestAvroDestinationUnsupportedCompression(t *testing.T) {
	_, err := NewAvroDestination(core.Config{Path: "out.avro.lz4"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
