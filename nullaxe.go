package nullaxe

import (
	"database/sql"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/infer"
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/JohnTocci/Nullaxe/reader"
	"github.com/JohnTocci/Nullaxe/records"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Request struct {
	// Input path. Empty reads stdin.
	Path string

	// File specifics, detected from the path when empty.
	Format      string
	Compression string

	// CSV
	Delimiter string
	Header    bool

	// Columns to infer; nil means all.
	Subset []string

	// Inference thresholds; nil means infer.DefaultConfig.
	Config *infer.Config

	// Target database.
	Database string
	Schema   string
	Table    string

	// Behavior
	AppendTable bool
	CStore      bool
}

func (r *Request) delimiter() (rune, error) {
	if r.Delimiter == "" {
		if r.Format == reader.TSV {
			return '\t', nil
		}
		return ',', nil
	}

	if r.Delimiter == `\t` {
		return '\t', nil
	}

	d, size := utf8.DecodeRuneInString(r.Delimiter)
	if size != len(r.Delimiter) {
		return 0, errors.Errorf("delimiter must be a single character: %q", r.Delimiter)
	}

	return d, nil
}

// Load reads the input into a *frame.Frame for delimited text or a
// *records.Set for JSON and LDJSON.
func Load(r *Request) (interface{}, error) {
	in, err := reader.Open(r.Path, r.Format, r.Compression)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	r.Format = in.Format

	switch in.Format {
	case reader.CSV, reader.TSV:
		d, err := r.delimiter()
		if err != nil {
			return nil, err
		}

		f, err := frame.ReadCSV(in, frame.CSVOptions{
			Delimiter: d,
			Header:    r.Header,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", r.Path)
		}

		return f, nil

	case reader.JSON, reader.LDJSON:
		s, err := records.Decode(in, records.Format(in.Format))
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", r.Path)
		}

		return s, nil
	}

	return nil, errors.Errorf("file type not supported: %s", in.Format)
}

// Infer loads the input and infers its column types.
func Infer(r *Request) (interface{}, error) {
	data, err := Load(r)
	if err != nil {
		return nil, err
	}

	return infer.Infer(data, r.Subset, r.Config)
}

// ToFrame returns data as a frame, converting record sets.
func ToFrame(data interface{}) (*frame.Frame, error) {
	switch d := data.(type) {
	case *frame.Frame:
		return d, nil
	case *records.Set:
		return d.Frame()
	}

	return nil, &infer.TypeMismatchError{Value: data}
}

// Profile summarizes an inferred dataset.
func Profile(data interface{}) (*profile.Profile, error) {
	f, err := ToFrame(data)
	if err != nil {
		return nil, err
	}

	return f.Profile(nil), nil
}

// Import infers the input's column types and loads it into Postgres,
// returning the number of rows loaded.
func Import(r *Request) (int64, error) {
	if r.Table == "" {
		_, base := path.Split(r.Path)
		r.Table = strings.Split(base, ".")[0]
	}

	if r.Table == "" {
		return 0, errors.New("table name required when reading stdin")
	}

	if r.Schema == "" {
		r.Schema = "public"
	}

	data, err := Infer(r)
	if err != nil {
		return 0, err
	}

	f, err := ToFrame(data)
	if err != nil {
		return 0, err
	}

	log := logrus.WithFields(logrus.Fields{
		"schema": r.Schema,
		"table":  r.Table,
	})

	log.WithField("columns", f.Width()).Info("done inferring")

	db, err := sql.Open("postgres", r.Database)
	if err != nil {
		return 0, errors.Wrap(err, "cannot open db connection")
	}
	defer db.Close()

	schema := NewSchema(f)
	schema.Cstore = r.CStore

	log.Info("begin load")

	var n int64
	dbc := New(db)
	if r.AppendTable {
		n, err = dbc.Append(r.Schema, r.Table, schema, f)
	} else {
		n, err = dbc.Replace(r.Schema, r.Table, schema, f)
	}
	if err != nil {
		return n, errors.Wrap(err, "error loading")
	}

	log.WithField("rows", n).Info("loaded records")

	return n, nil
}
