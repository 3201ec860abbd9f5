package reader

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniversalReader(t *testing.T) {
	s := "\xef\xbb\xbfhello world!\r"

	ur := NewUniversalReader(bytes.NewBufferString(s))

	buf := make([]byte, 20)
	n, err := ur.Read(buf)
	require.NoError(t, err)

	assert.Equal(t, 20, cap(buf))
	assert.Equal(t, len(s)-3, n)
	assert.Equal(t, "hello world!\n", string(buf[:n]))
}

func TestDetectType(t *testing.T) {
	tests := map[string][2]string{
		"data.csv":          {CSV, ""},
		"data.CSV.gz":       {CSV, Gzip},
		"dir/data.tsv.bz2":  {TSV, Bzip2},
		"events.ldjson":     {LDJSON, ""},
		"events.jsonl.gzip": {LDJSON, Gzip},
		"list.json":         {JSON, ""},
		"noext":             {"", ""},
	}

	for name, exp := range tests {
		t.Run(name, func(t *testing.T) {
			format, compr := DetectType(name)
			assert.Equal(t, exp[0], format)
			assert.Equal(t, exp[1], compr)
		})
	}
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.gz")

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("a,b\r\n1,2\r\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r, err := Open(path, "", "")
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, CSV, r.Format)
	assert.Equal(t, Gzip, r.Compression)

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\n1,2\n\n", string(b))
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("data.csv", "", "zip")
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing.csv"), "", "")
	assert.Error(t, err)
}
