package profile

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type profiler struct {
	Config  *Config
	Count   int64
	Include map[string]struct{}
	Exclude map[string]struct{}
	Fields  map[string]*profilerField
	order   int
}

// Profiler aggregates typed values into a Profile.
type Profiler interface {
	// Increment the record count.
	Incr()

	// Record records a field-value pair. A nil value is a null.
	Record(field string, value interface{})

	// SetType sets the storage type of a field and its number of
	// category levels.
	SetType(field string, typ ValueType, levels int)

	// Profile returns the profile.
	Profile() *Profile
}

type Config struct {
	// Include are the fields to explicitly include.
	Include []string

	// Exclude are the fields to explicitly exclude.
	Exclude []string
}

func (p *profiler) Incr() {
	p.Count++
}

// field returns the field profile if it should be profiled.
func (p *profiler) field(n string) (*profilerField, bool) {
	k := strings.ToLower(n)

	if _, ok := p.Exclude[k]; ok {
		return nil, false
	}

	if len(p.Include) > 0 {
		if _, ok := p.Include[k]; !ok {
			return nil, false
		}
	}

	f, ok := p.Fields[n]
	if !ok {
		f = newProfilerField(n, p.order)
		p.order++
		p.Fields[n] = f
	}

	return f, true
}

func (p *profiler) Profile() *Profile {
	r := NewProfile()
	r.RecordCount = p.Count

	for k, f := range p.Fields {
		r.Fields[k] = f.Field()
	}

	return r
}

func (p *profiler) Record(n string, v interface{}) {
	f, ok := p.field(n)
	if !ok {
		return
	}

	if v == nil {
		f.Nulls++
		return
	}

	k := ValueKey(v)

	if _, ok := f.Values[k]; ok {
		f.Unique = false
	} else {
		f.Values[k] = struct{}{}
	}
}

func (p *profiler) SetType(n string, t ValueType, levels int) {
	f, ok := p.field(n)
	if !ok {
		return
	}

	f.Type = t
	f.Levels = levels
}

// ValueKey returns a comparable key for v. Values of different types never
// share a key, so json.Number("1") and "1" are distinct.
func ValueKey(v interface{}) interface{} {
	switch x := v.(type) {
	case string, json.Number, int64, float64, bool:
		return x
	case time.Time:
		return x.UnixNano()
	}

	return fmt.Sprintf("%T:%v", v, v)
}

// Field stores aggregation information and statistics for a field.
type profilerField struct {
	Name   string
	Index  int
	Type   ValueType
	Levels int
	Nulls  int64
	Values map[interface{}]struct{}
	Unique bool
}

func (p *profilerField) Field() *Field {
	return &Field{
		Name:        p.Name,
		Index:       p.Index,
		Type:        p.Type,
		Nullable:    p.Nulls > 0,
		NullCount:   p.Nulls,
		Unique:      p.Unique && len(p.Values) > 0,
		UniqueCount: int64(len(p.Values)),
		Levels:      p.Levels,
	}
}

func newProfilerField(name string, index int) *profilerField {
	return &profilerField{
		Name:   name,
		Index:  index,
		Values: make(map[interface{}]struct{}),
		Unique: true,
	}
}

func NewProfiler(c *Config) Profiler {
	if c == nil {
		c = &Config{}
	}

	p := &profiler{
		Config: c,
		Fields: make(map[string]*profilerField),
	}

	if len(p.Config.Exclude) > 0 {
		p.Exclude = make(map[string]struct{})

		for _, f := range p.Config.Exclude {
			p.Exclude[strings.ToLower(f)] = struct{}{}
		}
	}

	if len(p.Config.Include) > 0 {
		p.Include = make(map[string]struct{})

		for _, f := range p.Config.Include {
			p.Include[strings.ToLower(f)] = struct{}{}
		}
	}

	return p
}
