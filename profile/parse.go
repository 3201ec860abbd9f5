package profile

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	dateFormats = []string{
		"2006/01/02",
		"01-02-2006",
		"01-02-06",
		"1/2/2006",
		"1/2/06",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		"02-Jan-2006",
	}

	dateTimeFormats = []string{
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
		time.RFC3339Nano,
		"2006-01-02 15:04:05Z07:00",
		"1/2/2006 15:04",
		"1/2/2006 15:04:05",
		time.RFC1123Z,
		time.RFC1123,
	}

	boolTokens = map[string]bool{
		"true":  true,
		"yes":   true,
		"1":     true,
		"false": false,
		"no":    false,
		"0":     false,
	}
)

// int64 bounds as floats; the upper one is exclusive.
const (
	minIntFloat = -9223372036854775808.0
	maxIntFloat = 9223372036854775808.0
)

// Number is a successfully parsed numeric value. Int is only meaningful
// when Integral is true.
type Number struct {
	Float    float64
	Int      int64
	Integral bool
}

// NumberFromFloat builds a Number from a float, detecting integral values
// that fit in an int64.
func NumberFromFloat(f float64) (Number, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, false
	}

	n := Number{Float: f}

	if f == math.Trunc(f) && f >= minIntFloat && f < maxIntFloat {
		n.Int = int64(f)
		n.Integral = true
	}

	return n, true
}

// ParseNumber parses decimal integers and floats. NaN and infinities are
// treated as failures since they usually stand in for missing data.
func ParseNumber(s string) (Number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}, false
	}

	if i, ok := ParseInt(s); ok {
		return Number{Float: float64(i), Int: i, Integral: true}, true
	}

	f, ok := ParseFloat(s)
	if !ok {
		return Number{}, false
	}

	return NumberFromFloat(f)
}

// ParseBoolToken maps a case-insensitive token from the fixed boolean
// vocabulary (true/false, yes/no, 1/0).
func ParseBoolToken(s string) (bool, bool) {
	b, ok := boolTokens[strings.ToLower(strings.TrimSpace(s))]
	return b, ok
}

// ParseDateTime tries the ISO date layout first and falls back to the
// other date and date-time layouts. Bare numbers never parse.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if len(s) == len(isoDate) && s[4] == '-' && s[7] == '-' {
		if v, err := time.Parse(isoDate, s); err == nil {
			return v, true
		}
	}

	if v, ok := ParseDate(s); ok {
		return v, true
	}

	for _, layout := range dateTimeFormats {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}

	return time.Time{}, false
}

func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	for _, layout := range dateFormats {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}

	return time.Time{}, false
}

// ParseFloat parses decimal or exponent notation. Hexadecimal floats are
// rejected.
func ParseFloat(s string) (float64, bool) {
	if isHex(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isHex(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func ParseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// HasLeadingZeros checks if a valid integer value contains leading zeros.
// This is often an indicator that this is not an integer, but an identfier.
func HasLeadingZeros(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return false
	}

	if _, ok := ParseInt(s); !ok {
		return false
	}

	return s[0] == '0'
}
