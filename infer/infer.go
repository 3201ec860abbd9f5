// Package infer recasts dataset columns to the first type that fits their
// values, trying datetime, numeric, boolean and category in that order.
package infer

import (
	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/JohnTocci/Nullaxe/records"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// Boolean tokens are a closed vocabulary, so their threshold is fixed and
// stricter than the configurable ones.
const boolThreshold = 0.95

// Infer recasts the columns named in subset, or all columns when subset is
// nil. Unknown names are ignored and an empty non-nil subset does nothing.
// data must be a *frame.Frame or a *records.Set; the returned value has the
// same type.
func Infer(data interface{}, subset []string, c *Config) (interface{}, error) {
	switch d := data.(type) {
	case *frame.Frame:
		if d != nil {
			return InferFrame(d, subset, c), nil
		}
	case *records.Set:
		if d != nil {
			return InferRecords(d, subset, c), nil
		}
	}

	return nil, &TypeMismatchError{Value: data}
}

// InferFrame is Infer for frames.
func InferFrame(f *frame.Frame, subset []string, c *Config) *frame.Frame {
	if c == nil {
		c = DefaultConfig()
	}

	if !c.Inplace {
		f = f.Copy()
	}

	run(frameDataset{f}, subset, c)

	return f
}

// InferRecords is Infer for record sets.
func InferRecords(s *records.Set, subset []string, c *Config) *records.Set {
	if c == nil {
		c = DefaultConfig()
	}

	if !c.Inplace {
		s = s.Copy()
	}

	run(recordsDataset{s}, subset, c)

	return s
}

func columns(d dataset, subset []string) []string {
	if subset == nil {
		return d.names()
	}

	var cols []string
	seen := make(map[string]struct{}, len(subset))

	for _, n := range subset {
		if _, ok := seen[n]; ok || !d.has(n) {
			continue
		}

		seen[n] = struct{}{}
		cols = append(cols, n)
	}

	return cols
}

func run(d dataset, subset []string, c *Config) {
	cols := columns(d, subset)
	decisions := make([]decision, len(cols))

	// Decisions only read the dataset; all writes happen afterwards.
	if c.Workers > 1 && len(cols) > 1 {
		p := pool.New().WithMaxGoroutines(c.Workers)

		for i, n := range cols {
			p.Go(func() {
				decisions[i] = decide(d.values(n), c)
			})
		}

		p.Wait()
	} else {
		for i, n := range cols {
			decisions[i] = decide(d.values(n), c)
		}
	}

	log := c.logger()

	for i, n := range cols {
		dec := decisions[i]

		entry := log.WithFields(logrus.Fields{
			"column":   n,
			"non_null": dec.nonNull,
		})

		if dec.values == nil {
			entry.Debug("column type unchanged")
			continue
		}

		if err := d.replace(n, dec.typ, dec.values); err != nil {
			entry.WithError(err).Error("replace column")
			continue
		}

		entry.WithFields(logrus.Fields{
			"type":  dec.typ,
			"ratio": dec.ratio,
		}).Debug("inferred column type")
	}
}

// decision is the outcome for one column. A nil values slice means the
// column is left as is.
type decision struct {
	typ     profile.ValueType
	values  []interface{}
	ratio   float64
	nonNull int
}

func decide(vs []interface{}, c *Config) decision {
	var dec decision

	for _, v := range vs {
		if v != nil {
			dec.nonNull++
		}
	}

	if dec.nonNull == 0 {
		return dec
	}

	ratio := func(n int) float64 {
		return float64(n) / float64(dec.nonNull)
	}

	// Datetime.
	times := make([]interface{}, len(vs))
	n := 0

	for i, v := range vs {
		if v == nil {
			continue
		}

		if t, ok := parseDateTime(v); ok {
			times[i] = t
			n++
		}
	}

	if r := ratio(n); r >= c.DatetimeThreshold {
		dec.typ, dec.values, dec.ratio = profile.DateTimeType, times, r
		return dec
	}

	// Numeric.
	if !c.PreserveLeadingZeros || !anyLeadingZeros(vs) {
		nums := make([]*profile.Number, len(vs))
		integral := true
		n = 0

		for i, v := range vs {
			if v == nil {
				continue
			}

			if x, ok := parseNumber(v); ok {
				nums[i] = &x
				integral = integral && x.Integral
				n++
			}
		}

		if r := ratio(n); r >= c.NumericThreshold {
			out := make([]interface{}, len(vs))

			for i, x := range nums {
				switch {
				case x == nil:
				case integral:
					out[i] = x.Int
				default:
					out[i] = x.Float
				}
			}

			dec.typ, dec.ratio = profile.FloatType, r
			if integral {
				dec.typ = profile.IntType
			}
			dec.values = out

			return dec
		}
	}

	// Boolean.
	bools := make([]interface{}, len(vs))
	n = 0

	for i, v := range vs {
		if v == nil {
			continue
		}

		if b, ok := parseBool(v); ok {
			bools[i] = b
			n++
		}
	}

	if r := ratio(n); r >= boolThreshold {
		dec.typ, dec.values, dec.ratio = profile.BoolType, bools, r
		return dec
	}

	// Category.
	uniques := make(map[interface{}]struct{})

	for _, v := range vs {
		if v != nil {
			uniques[profile.ValueKey(v)] = struct{}{}
		}
	}

	if r := ratio(len(uniques)); r <= c.CategoryUniqueRatio {
		dec.typ, dec.values, dec.ratio = profile.CategoryType, vs, r
	}

	return dec
}

func anyLeadingZeros(vs []interface{}) bool {
	for _, v := range vs {
		if hasLeadingZeros(v) {
			return true
		}
	}
	return false
}
