package utils

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Round rounds f to the given number of decimal places. Non-finite values
// pass through unchanged.
func Round(f float64, decimals int) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(f*p) / p
}

// SumsToOne reports whether the shares add up to one within tol.
func SumsToOne(shares []float64, tol float64) bool {
	if len(shares) == 0 {
		return false
	}
	return scalar.EqualWithinAbs(floats.Sum(shares), 1, tol)
}

// SameValue reports whether a and b agree within tol, absolute or relative.
func SameValue(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}

// FormatFloat renders f for flat-file output; infinities become +Inf/-Inf.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
