package money

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round rounds half away from zero at the given number of decimal places.
// The float is taken at its shortest decimal representation, so 1.005
// rounds to 1.01 rather than to the binary neighbour below it. NaN and the
// infinities are returned unchanged.
func Round(value float64, places int32) float64 {
	if !Finite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// Format renders a monetary value with exactly two decimals.
func Format(value float64) string {
	return FormatFixed(value, 2)
}

func FormatFixed(value float64, places int32) string {
	if !Finite(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return decimal.NewFromFloat(value).StringFixed(places)
}

// Within reports whether a and b differ by no more than tolerance. A
// non-finite operand is never within tolerance.
func Within(a, b, tolerance float64) bool {
	if !Finite(a) || !Finite(b) || !Finite(tolerance) {
		return false
	}
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs().LessThanOrEqual(decimal.NewFromFloat(tolerance))
}
