package infer

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the inference thresholds. Use DefaultConfig for the
// documented defaults; a nil *Config means the same.
type Config struct {
	// Fraction of non-null values that must parse as numbers.
	NumericThreshold float64

	// Fraction of non-null values that must parse as dates.
	DatetimeThreshold float64

	// A column whose distinct/non-null ratio is at or below this becomes
	// a category.
	CategoryUniqueRatio float64

	// If false, the input is copied and left untouched.
	Inplace bool

	// If true, integer columns with leading zeros ("007") are treated as
	// identifiers and not cast to numbers.
	PreserveLeadingZeros bool

	// Number of columns decided concurrently. Values below 2 run
	// sequentially.
	Workers int

	Logger logrus.FieldLogger
}

func DefaultConfig() *Config {
	return &Config{
		NumericThreshold:    0.6,
		DatetimeThreshold:   0.6,
		CategoryUniqueRatio: 0.05,
		Inplace:             true,
	}
}

// Validate checks that thresholds are fractions and Workers is not
// negative.
func (c *Config) Validate() error {
	fractions := []struct {
		name string
		v    float64
	}{
		{"numeric_threshold", c.NumericThreshold},
		{"datetime_threshold", c.DatetimeThreshold},
		{"category_unique_ratio", c.CategoryUniqueRatio},
	}

	for _, f := range fractions {
		if f.v < 0 || f.v > 1 {
			return errors.Errorf("%s must be within [0, 1], got %v", f.name, f.v)
		}
	}

	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}

	return nil
}

func (c *Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
