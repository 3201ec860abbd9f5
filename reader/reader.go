package reader

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Input formats.
const (
	CSV    = "csv"
	TSV    = "tsv"
	JSON   = "json"
	LDJSON = "ldjson"
)

// Compression types.
const (
	Gzip  = "gzip"
	Bzip2 = "bzip2"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// UniversalReader wraps an io.Reader to strip a leading byte order mark
// and replace carriage returns with newlines so delimited readers see
// consistent line endings.
type UniversalReader struct {
	r     io.Reader
	start bool
}

func (r *UniversalReader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)

	if !r.start && n > 0 {
		r.start = true

		if bytes.HasPrefix(buf[:n], bom) {
			copy(buf, buf[len(bom):n])
			n -= len(bom)
		}
	}

	for i, b := range buf[:n] {
		if b == '\r' {
			buf[i] = '\n'
		}
	}

	return n, err
}

func NewUniversalReader(r io.Reader) *UniversalReader {
	return &UniversalReader{r: r}
}

// DetectType attempts to detect the file format and compression types by looking at the
// file path extensions.
func DetectType(name string) (string, string) {
	_, base := path.Split(name)

	var format, compression string

	for _, ext := range strings.Split(strings.ToLower(base), ".")[1:] {
		switch ext {
		case "gz", "gzip":
			compression = Gzip
		case "bz2", "bzip2":
			compression = Bzip2
		case "csv":
			format = CSV
		case "tsv", "tab":
			format = TSV
		case "json":
			format = JSON
		case "ldjson", "ndjson", "jsonl":
			format = LDJSON
		}
	}

	return format, compression
}

// Reader is an opened, decompressed input.
type Reader struct {
	Name        string
	Format      string
	Compression string

	reader io.Reader
	closer io.Closer
}

// Read implements the io.Reader interface.
func (r *Reader) Read(buf []byte) (int, error) {
	return r.reader.Read(buf)
}

// Close implements the io.Closer interface.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Open a reader by name with an optional format and compression, both
// detected from the name when empty. If no name is specified, stdin is
// used and the format defaults to CSV.
func Open(name, format, compr string) (*Reader, error) {
	dformat, dcompr := DetectType(name)

	if format == "" {
		format = dformat
	}
	if format == "" {
		format = CSV
	}

	if compr == "" {
		compr = dcompr
	}

	switch compr {
	case Bzip2, Gzip, "":
	default:
		return nil, errors.Errorf("unknown compression type %s", compr)
	}

	r := &Reader{
		Name:        name,
		Format:      format,
		Compression: compr,
	}

	if name == "" {
		r.reader = os.Stdin
	} else {
		file, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}

		r.reader = file
		r.closer = file
	}

	switch compr {
	case Gzip:
		gr, err := gzip.NewReader(r.reader)
		if err != nil {
			r.Close()
			return nil, errors.Wrapf(err, "gzip %s", name)
		}
		r.reader = gr
	case Bzip2:
		r.reader = bzip2.NewReader(r.reader)
	}

	r.reader = NewUniversalReader(r.reader)

	logrus.WithFields(logrus.Fields{
		"name":        name,
		"format":      format,
		"compression": compr,
	}).Debug("opened input")

	return r, nil
}
