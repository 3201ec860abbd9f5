package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/pkg/errors"
)

// CSVOptions controls how delimited text is read.
type CSVOptions struct {
	Delimiter rune

	// If true, the first record names the columns. Otherwise columns are
	// named c0, c1, ...
	Header bool
}

// DefaultCSVOptions reads comma-separated data with a header.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter: ',',
		Header:    true,
	}
}

// ReadCSV reads delimited text into a frame of text columns. Empty fields
// are nulls and short records are padded with nulls.
func ReadCSV(in io.Reader, opts CSVOptions) (*Frame, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	// First record, may be the header.
	record, err := cr.Read()
	if err == io.EOF {
		return MustNew(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	header := make([]string, len(record))
	if opts.Header {
		seen := make(map[string]struct{}, len(record))

		for i, n := range record {
			header[i] = uniqueName(strings.ToLower(strings.TrimSpace(n)), seen)
		}
	} else {
		for i := range record {
			header[i] = fmt.Sprintf("c%d", i)
		}
	}

	values := make([][]interface{}, len(header))

	add := func(record []string) {
		for i := range header {
			var v interface{}

			// Treat empty strings as a null value.
			if i < len(record) && record[i] != "" {
				v = record[i]
			}

			values[i] = append(values[i], v)
		}
	}

	if !opts.Header {
		add(record)
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrap(err, "read record")
		}

		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, errors.Errorf("line %d: %d fields, expected at most %d", line, len(record), len(header))
		}

		add(record)
	}

	cols := make([]*Column, len(header))
	for i, n := range header {
		cols[i] = NewColumn(n, profile.StringType, values[i])
	}

	return New(cols...)
}

// uniqueName returns n, or n suffixed with _1, _2, ... when a previous
// header already took it.
func uniqueName(n string, seen map[string]struct{}) string {
	name := n

	for i := 1; ; i++ {
		if _, ok := seen[name]; !ok {
			break
		}
		name = fmt.Sprintf("%s_%d", n, i)
	}

	seen[name] = struct{}{}

	return name
}

// WriteCSV writes the frame with a header row. Nulls are written as empty
// fields and times as RFC 3339.
func WriteCSV(w io.Writer, f *Frame, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}

	if err := cw.Write(f.Names()); err != nil {
		return err
	}

	row := make([]string, f.Width())

	for i := 0; i < f.Len(); i++ {
		for j, c := range f.columns {
			row[j] = FormatValue(c.Value(i))
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// FormatValue renders a single value as text. Nulls become "".
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	}

	return fmt.Sprint(v)
}
