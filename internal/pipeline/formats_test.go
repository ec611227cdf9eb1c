package pipeline

import (
	"os"
	"testing"

	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/suite"

	"github.com/ajitpratap0/titleclean/pkg/config"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/ajitpratap0/titleclean/pkg/testutil"
)

// FormatSuite cleans the same CSV export into every output format and
// reads each result back.
type FormatSuite struct {
	testutil.IntegrationTestSuite
	input string
}

func TestFormatSuite(t *testing.T) {
	testutil.IntegrationTest(t)
	suite.Run(t, new(FormatSuite))
}

func (s *FormatSuite) SetupSuite() {
	s.IntegrationTestSuite.SetupSuite()
	s.input = s.WriteTitlesCSV("netflix_titles.csv")
}

func (s *FormatSuite) execute(output string) *Result {
	cfg := config.Default()
	cfg.Input.Path = s.input
	cfg.Output.Path = s.Path(output)
	cfg.Summary.Path = s.Path(output + ".summary.txt")
	s.Require().NoError(cfg.Validate())

	result, err := Execute(s.Context(), cfg, testutil.TestLogger(s.T()))
	s.Require().NoError(err)
	return result
}

func (s *FormatSuite) TestReadableOutputs() {
	for _, name := range []string{
		"cleaned.csv",
		"cleaned.tsv.lz4",
		"cleaned.jsonl.s2",
		"cleaned.ndjson.gz",
		"cleaned.xlsx",
	} {
		s.Run(name, func() {
			result := s.execute(name)

			t, err := Load(s.Context(), core.Config{Path: result.OutputPath}, nil, nil)
			s.Require().NoError(err)
			s.Equal(table.Shape{Rows: 4, Cols: 14}, t.Shape())
			s.Equal(cleanedColumns, t.ColumnNames())
			s.Equal("Not Available", t.Get(1, "director").String())
		})
	}
}

func (s *FormatSuite) TestAvroOutput() {
	result := s.execute("cleaned.avro.zst")

	f, err := os.Open(result.OutputPath)
	s.Require().NoError(err)
	defer f.Close()

	ocf, err := goavro.NewOCFReader(f)
	s.Require().NoError(err)
	rows := 0
	for ocf.Scan() {
		_, err := ocf.Read()
		s.Require().NoError(err)
		rows++
	}
	s.Require().NoError(ocf.Err())
	s.Equal(4, rows)
	s.Equal(goavro.CompressionZstandardLabel, string(ocf.MetaData()["avro.codec"]))
}
