package compression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	original := []byte(strings.Repeat("show_id,type,title\ns1,Movie,Dick Johnson Is Dead\n", 200))

	for _, alg := range []Algorithm{None, Gzip, Snappy, S2, LZ4, Zstd} {
		for _, level := range []Level{Fastest, Default, Best} {
			t.Run(string(alg), func(t *testing.T) {
				compressed, err := Compress(original, alg, level)
				require.NoError(t, err)
				if alg != None {
					assert.Less(t, len(compressed), len(original))
				}

				decompressed, err := Decompress(compressed, alg)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(original, decompressed))
			})
		}
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		alg  Algorithm
		base string
	}{
		{"netflix_cleaned.csv", None, "netflix_cleaned.csv"},
		{"netflix_cleaned.csv.gz", Gzip, "netflix_cleaned.csv"},
		{"out/titles.jsonl.ZST", Zstd, "out/titles.jsonl"},
		{"titles.tsv.sz", Snappy, "titles.tsv"},
		{"titles.csv.s2", S2, "titles.csv"},
		{"titles.csv.lz4", LZ4, "titles.csv"},
		{"archive.tar", None, "archive.tar"},
	}
	for _, tt := range tests {
		alg, base := FromPath(tt.path)
		assert.Equal(t, tt.alg, alg, tt.path)
		assert.Equal(t, tt.base, base, tt.path)
	}
}

func TestUnsupported(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Algorithm("brotli"), Default)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	_, err = NewReader(strings.NewReader(""), Algorithm("brotli"))
	assert.Error(t, err)

	_, err = Decompress([]byte("not gzip"), Gzip)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{"": Default, "fastest": Fastest, "Better": Better, "best": Best} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("max")
	assert.Error(t, err)
}
