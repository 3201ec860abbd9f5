// Package frame is a columnar dataset with typed nulls. A null is always
// nil, regardless of the column's storage type.
package frame

import (
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/pkg/errors"
)

// Column is a named, typed sequence of nullable values.
type Column struct {
	Name string
	Type profile.ValueType

	values []interface{}

	// Dictionary for category columns; values then hold int codes.
	levels []interface{}
}

// NewColumn returns a column holding values as given. A nil entry is a
// null. For CategoryType the values are dictionary-encoded.
func NewColumn(name string, t profile.ValueType, values []interface{}) *Column {
	c := &Column{Name: name}
	c.set(t, append([]interface{}(nil), values...))
	return c
}

// Strings returns a text column. Empty strings are nulls.
func Strings(name string, values ...string) *Column {
	vs := make([]interface{}, len(values))

	for i, v := range values {
		if v != "" {
			vs[i] = v
		}
	}

	return NewColumn(name, profile.StringType, vs)
}

func (c *Column) set(t profile.ValueType, values []interface{}) {
	c.Type = t
	c.levels = nil

	if t != profile.CategoryType {
		c.values = values
		return
	}

	index := make(map[interface{}]int)
	codes := make([]interface{}, len(values))

	for i, v := range values {
		if v == nil {
			continue
		}

		k := profile.ValueKey(v)

		code, ok := index[k]
		if !ok {
			code = len(c.levels)
			index[k] = code
			c.levels = append(c.levels, v)
		}

		codes[i] = code
	}

	c.values = codes
}

// Len returns the number of values.
func (c *Column) Len() int {
	return len(c.values)
}

// Value returns the i-th value, decoding category codes to their level.
func (c *Column) Value(i int) interface{} {
	v := c.values[i]
	if v == nil || c.Type != profile.CategoryType {
		return v
	}

	return c.levels[v.(int)]
}

// Values returns a decoded copy of the column values.
func (c *Column) Values() []interface{} {
	vs := make([]interface{}, len(c.values))

	for i := range c.values {
		vs[i] = c.Value(i)
	}

	return vs
}

// IsNull reports whether the i-th value is null.
func (c *Column) IsNull(i int) bool {
	return c.values[i] == nil
}

// NullCount returns the number of null values.
func (c *Column) NullCount() int {
	var n int

	for _, v := range c.values {
		if v == nil {
			n++
		}
	}

	return n
}

// Levels returns the category levels in order of first appearance.
func (c *Column) Levels() []interface{} {
	return append([]interface{}(nil), c.levels...)
}

// Codes returns the category code of each value, -1 for nulls. It returns
// nil for non-category columns.
func (c *Column) Codes() []int {
	if c.Type != profile.CategoryType {
		return nil
	}

	codes := make([]int, len(c.values))

	for i, v := range c.values {
		if v == nil {
			codes[i] = -1
		} else {
			codes[i] = v.(int)
		}
	}

	return codes
}

func (c *Column) copy() *Column {
	return &Column{
		Name:   c.Name,
		Type:   c.Type,
		values: append([]interface{}(nil), c.values...),
		levels: append([]interface{}(nil), c.levels...),
	}
}

// Frame is an ordered set of equal-length columns.
type Frame struct {
	columns []*Column
	index   map[string]int
}

// New returns a frame of the given columns. Column names must be unique
// and all columns must have the same length.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{
		index: make(map[string]int, len(cols)),
	}

	for i, c := range cols {
		if _, ok := f.index[c.Name]; ok {
			return nil, errors.Errorf("duplicate column: %s", c.Name)
		}

		if i > 0 && c.Len() != cols[0].Len() {
			return nil, errors.Errorf("column %s has %d values, expected %d", c.Name, c.Len(), cols[0].Len())
		}

		f.index[c.Name] = i
		f.columns = append(f.columns, c)
	}

	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(cols ...*Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.columns) == 0 {
		return 0
	}
	return f.columns[0].Len()
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))

	for i, c := range f.columns {
		names[i] = c.Name
	}

	return names
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.columns[i], true
}

// Columns returns the columns in order.
func (f *Frame) Columns() []*Column {
	return append([]*Column(nil), f.columns...)
}

// Replace sets the type and values of the named column. The number of
// values must match the frame's row count.
func (f *Frame) Replace(name string, t profile.ValueType, values []interface{}) error {
	c, ok := f.Column(name)
	if !ok {
		return errors.Errorf("unknown column: %s", name)
	}

	if len(values) != c.Len() {
		return errors.Errorf("column %s: got %d values, expected %d", name, len(values), c.Len())
	}

	c.set(t, values)

	return nil
}

// Copy returns a deep copy of the frame. Values themselves are immutable
// scalars and are shared.
func (f *Frame) Copy() *Frame {
	g := &Frame{
		columns: make([]*Column, len(f.columns)),
		index:   make(map[string]int, len(f.index)),
	}

	for i, c := range f.columns {
		g.columns[i] = c.copy()
		g.index[c.Name] = i
	}

	return g
}

// Profile summarizes the columns of the frame.
func (f *Frame) Profile(c *profile.Config) *profile.Profile {
	p := profile.NewProfiler(c)

	for _, col := range f.columns {
		p.SetType(col.Name, col.Type, len(col.levels))
	}

	for i := 0; i < f.Len(); i++ {
		for _, col := range f.columns {
			p.Record(col.Name, col.Value(i))
		}

		p.Incr()
	}

	return p.Profile()
}
