// Package records is a row-oriented dataset of decoded JSON documents.
//
// Unlike frame, a value is null when its key is missing, when it is nil,
// or when it is a float NaN. Float fields store nulls as NaN.
package records

import (
	"encoding/json"
	"math"
	"time"

	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/pkg/errors"
)

// Record is a single flattened document.
type Record map[string]interface{}

// Set is an ordered collection of records sharing a field list.
type Set struct {
	fields []string
	index  map[string]struct{}
	rows   []Record
	types  map[string]profile.ValueType
}

// New returns a set of the given rows. Fields are ordered by first
// appearance.
func New(rows ...Record) *Set {
	s := &Set{
		index: make(map[string]struct{}),
		types: make(map[string]profile.ValueType),
	}

	for _, r := range rows {
		s.Append(r)
	}

	return s
}

// Append adds a record, registering any new fields in sorted key order.
// A nil record is stored as an empty one.
func (s *Set) Append(r Record) {
	if r == nil {
		r = Record{}
	}

	for _, k := range sortedKeys(r) {
		if _, ok := s.index[k]; !ok {
			s.index[k] = struct{}{}
			s.fields = append(s.fields, k)
		}
	}

	s.rows = append(s.rows, r)
}

// Fields returns the field names in order.
func (s *Set) Fields() []string {
	return append([]string(nil), s.fields...)
}

// HasField reports whether any record contains the field.
func (s *Set) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.rows)
}

// Row returns the i-th record.
func (s *Set) Row(i int) Record {
	return s.rows[i]
}

// IsNull reports whether v represents a null in this backend.
func IsNull(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	}
	return false
}

// Get returns the value of a field for the i-th record, or nil if it is
// null.
func (s *Set) Get(i int, name string) interface{} {
	v := s.rows[i][name]
	if IsNull(v) {
		return nil
	}
	return v
}

// Type returns the storage type of the field. Fields that were never set
// are typed by generalizing the types of their values.
func (s *Set) Type(name string) profile.ValueType {
	if t, ok := s.types[name]; ok {
		return t
	}

	t := profile.NullType

	for i := range s.rows {
		t = profile.GeneralizeType(t, valueType(s.Get(i, name)))
	}

	return t
}

// Levels returns the distinct non-null values of a category field in
// order of first appearance.
func (s *Set) Levels(name string) []interface{} {
	if s.types[name] != profile.CategoryType {
		return nil
	}

	var levels []interface{}
	seen := make(map[interface{}]struct{})

	for i := range s.rows {
		v := s.Get(i, name)
		if v == nil {
			continue
		}

		k := profile.ValueKey(v)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			levels = append(levels, v)
		}
	}

	return levels
}

// Replace sets the type and values of a field. Nil values are stored as
// NaN for float fields and nil otherwise.
func (s *Set) Replace(name string, t profile.ValueType, values []interface{}) error {
	if !s.HasField(name) {
		return errors.Errorf("unknown field: %s", name)
	}

	if len(values) != len(s.rows) {
		return errors.Errorf("field %s: got %d values, expected %d", name, len(values), len(s.rows))
	}

	for i, v := range values {
		if v == nil && t == profile.FloatType {
			v = math.NaN()
		}
		s.rows[i][name] = v
	}

	s.types[name] = t

	return nil
}

// Copy returns a deep copy of the set. Nested arrays are shared.
func (s *Set) Copy() *Set {
	c := &Set{
		fields: append([]string(nil), s.fields...),
		index:  make(map[string]struct{}, len(s.index)),
		rows:   make([]Record, len(s.rows)),
		types:  make(map[string]profile.ValueType, len(s.types)),
	}

	for k := range s.index {
		c.index[k] = struct{}{}
	}

	for k, t := range s.types {
		c.types[k] = t
	}

	for i, r := range s.rows {
		cr := make(Record, len(r))
		for k, v := range r {
			cr[k] = v
		}
		c.rows[i] = cr
	}

	return c
}

// Frame converts the set to a frame. Typed fields keep their type; other
// fields become text, or objects when they hold nested values.
func (s *Set) Frame() (*frame.Frame, error) {
	cols := make([]*frame.Column, len(s.fields))

	for j, n := range s.fields {
		t := s.Type(n)
		vs := make([]interface{}, len(s.rows))

		for i := range s.rows {
			v := s.Get(i, n)

			if v != nil {
				switch t {
				case profile.StringType, profile.NullType, profile.UnknownType:
					v = frame.FormatValue(plain(v))
				case profile.IntType, profile.FloatType, profile.CategoryType:
					v = plain(v)
				case profile.ObjectType:
					b, err := json.Marshal(v)
					if err != nil {
						return nil, errors.Wrapf(err, "field %s", n)
					}
					v = string(b)
				}
			}

			vs[i] = v
		}

		if t == profile.NullType || t == profile.UnknownType {
			t = profile.StringType
		}

		cols[j] = frame.NewColumn(n, t, vs)
	}

	return frame.New(cols...)
}

// plain converts decoder-specific values to the frame's Go types.
func plain(v interface{}) interface{} {
	x, ok := v.(json.Number)
	if !ok {
		return v
	}

	if i, err := x.Int64(); err == nil {
		return i
	}

	if f, err := x.Float64(); err == nil {
		return f
	}

	return x.String()
}

func valueType(v interface{}) profile.ValueType {
	switch x := v.(type) {
	case nil:
		return profile.NullType
	case string:
		return profile.StringType
	case bool:
		return profile.BoolType
	case int64:
		return profile.IntType
	case float64:
		return profile.FloatType
	case time.Time:
		return profile.DateTimeType
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return profile.IntType
		}
		return profile.FloatType
	}

	return profile.ObjectType
}
