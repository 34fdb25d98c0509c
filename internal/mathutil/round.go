// Package mathutil provides the decimal rounding used for every value
// that is persisted or reused by the kinematics engine.
package mathutil

import (
	"math"
	"strconv"
)

// Format renders x as a fixed-point decimal string with exactly precision
// fractional digits. Negative zero is written as zero.
func Format(x float64, precision int) string {
	s := strconv.FormatFloat(x, fixedPointFormat, precision, float64Bits)
	if s[0] == '-' && isZeroDigits(s[1:]) {
		return s[1:]
	}
	return s
}

// Round returns the value that Format(x, precision) denotes.
//
// The result is obtained by parsing the formatted string back, so a value
// passed through Round is exactly the number a reader of the exported
// table would reconstruct. Round is idempotent.
func Round(x float64, precision int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(Format(x, precision), float64Bits)
	if err != nil {
		// FormatFloat output for a finite value always parses.
		panic("mathutil: unparseable fixed-point string: " + err.Error())
	}
	return v
}

// RoundAll rounds every element of s in place and returns s.
func RoundAll(s []float64, precision int) []float64 {
	for i, v := range s {
		s[i] = Round(v, precision)
	}
	return s
}

// ValidPrecision reports whether precision is within [MinPrecision, MaxPrecision].
func ValidPrecision(precision int) bool {
	return precision >= MinPrecision && precision <= MaxPrecision
}

func isZeroDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '.' {
			return false
		}
	}
	return true
}
