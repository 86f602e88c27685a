package dataset

import (
	"math"
	"strconv"
	"strings"
)

// NumberFormat describes how raw field values are turned into numbers.
type NumberFormat struct {
	// DecimalSeparator defaults to '.' when 0.
	DecimalSeparator rune
	// ThousandsSeparator is stripped before parsing; 0 means none.
	ThousandsSeparator rune
}

// DefaultNumberFormat parses plain decimal numbers ("12", "-3.5", "1e3").
func DefaultNumberFormat() NumberFormat {
	return NumberFormat{DecimalSeparator: '.'}
}

// Parse converts s to a float. Surrounding whitespace is ignored. Empty
// strings, NaN, infinities and anything that does not parse yield 0 and false.
func (f NumberFormat) Parse(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, false
	}
	dec := f.DecimalSeparator
	if dec == 0 {
		dec = '.'
	}
	if thou := f.ThousandsSeparator; thou != 0 && thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		if strings.Contains(raw, ".") {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// Coerce is Parse with the boolean dropped: unparsable values fold into 0.
func (f NumberFormat) Coerce(s string) float64 {
	x, _ := f.Parse(s)
	return x
}
