package infer

import (
	"encoding/json"
	"time"

	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/JohnTocci/Nullaxe/records"
)

// dataset adapts a backend to the engine. values returns nil for every
// null regardless of how the backend stores it; replace maps nil back to
// the backend's null.
type dataset interface {
	names() []string
	has(name string) bool
	values(name string) []interface{}
	replace(name string, t profile.ValueType, values []interface{}) error
}

type frameDataset struct {
	f *frame.Frame
}

func (d frameDataset) names() []string {
	return d.f.Names()
}

func (d frameDataset) has(name string) bool {
	_, ok := d.f.Column(name)
	return ok
}

func (d frameDataset) values(name string) []interface{} {
	c, _ := d.f.Column(name)
	return c.Values()
}

func (d frameDataset) replace(name string, t profile.ValueType, values []interface{}) error {
	return d.f.Replace(name, t, values)
}

type recordsDataset struct {
	s *records.Set
}

func (d recordsDataset) names() []string {
	return d.s.Fields()
}

func (d recordsDataset) has(name string) bool {
	return d.s.HasField(name)
}

func (d recordsDataset) values(name string) []interface{} {
	vs := make([]interface{}, d.s.Len())

	for i := range vs {
		vs[i] = d.s.Get(i, name)
	}

	return vs
}

func (d recordsDataset) replace(name string, t profile.ValueType, values []interface{}) error {
	return d.s.Replace(name, t, values)
}

// The functions below apply the parse contract in profile to any value a
// backend may hold. Typed values parse as themselves.

func parseDateTime(v interface{}) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		return profile.ParseDateTime(x)
	}

	return time.Time{}, false
}

func parseNumber(v interface{}) (profile.Number, bool) {
	switch x := v.(type) {
	case int64:
		return profile.Number{Float: float64(x), Int: x, Integral: true}, true
	case float64:
		return profile.NumberFromFloat(x)
	case json.Number:
		return profile.ParseNumber(x.String())
	case string:
		return profile.ParseNumber(x)
	}

	return profile.Number{}, false
}

func parseBool(v interface{}) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case json.Number:
		return profile.ParseBoolToken(x.String())
	case string:
		return profile.ParseBoolToken(x)
	}

	return false, false
}

func hasLeadingZeros(v interface{}) bool {
	switch x := v.(type) {
	case json.Number:
		return profile.HasLeadingZeros(x.String())
	case string:
		return profile.HasLeadingZeros(x)
	}

	return false
}
