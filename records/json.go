package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Format is an encoding of a record stream.
type Format string

const (
	JSON   Format = "json"
	LDJSON Format = "ldjson"
)

type decoder struct {
	set *Set
}

// flatten copies m into r, joining nested object keys with a slash.
func flatten(r Record, path string, m map[string]interface{}) {
	for k, v := range m {
		fp := path + k

		if x, ok := v.(map[string]interface{}); ok {
			flatten(r, fp+"/", x)
			continue
		}

		r[fp] = v
	}
}

func (d *decoder) add(m map[string]interface{}) {
	r := make(Record, len(m))
	flatten(r, "", m)
	d.set.Append(r)
}

func (d *decoder) decodeLDJSON(in io.Reader) error {
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		b    bytes.Buffer
		line int
	)

	dec := json.NewDecoder(&b)
	dec.UseNumber()

	for s.Scan() {
		line++

		raw := bytes.TrimSpace(s.Bytes())
		if len(raw) == 0 {
			continue
		}

		b.Reset()
		b.Write(raw)

		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			return errors.Wrapf(err, "line %d", line)
		}

		d.add(m)
	}

	return s.Err()
}

func (d *decoder) decodeJSON(in io.Reader) error {
	dec := json.NewDecoder(in)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok != json.Delim('[') {
		return errors.Errorf("expected array, got: %v", tok)
	}

	for i := 0; dec.More(); i++ {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}

		d.add(m)
	}

	return nil
}

// Decode reads a JSON array of objects or line-delimited objects.
// Numbers are kept as json.Number.
func Decode(in io.Reader, format Format) (*Set, error) {
	d := decoder{
		set: New(),
	}

	var err error

	switch format {
	case LDJSON:
		err = d.decodeLDJSON(in)
	case JSON:
		err = d.decodeJSON(in)
	default:
		return nil, errors.Errorf("unsupported records format: %s", format)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", format)
	}

	return d.set, nil
}

// Encode writes one JSON object per line. NaN floats are written as null.
func Encode(w io.Writer, s *Set) error {
	enc := json.NewEncoder(w)

	for i, r := range s.rows {
		out := make(map[string]interface{}, len(r))

		for k, v := range r {
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				v = nil
			}
			out[k] = v
		}

		if err := enc.Encode(out); err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
	}

	return nil
}

func sortedKeys(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
