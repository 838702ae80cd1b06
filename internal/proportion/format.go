package proportion

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Above this magnitude fixed-point formatting falls back to FormatNumber.
const fixedLimit = 1e21

// Round2 rounds x to two decimals on its exact binary value, halves away
// from zero. The result is what a user sees, and what history stores.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= fixedLimit {
		return x
	}

	y := new(big.Float).SetPrec(256).SetFloat64(math.Abs(x))
	y.Mul(y, big.NewFloat(100))
	y.Add(y, big.NewFloat(0.5))
	n, _ := y.Int(nil)

	r, err := strconv.ParseFloat(n.String()+"e-2", 64)
	if err != nil {
		return x
	}
	if x < 0 {
		r = -r
	}
	return r
}

// FormatFixed2 renders x with exactly two decimals.
func FormatFixed2(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= fixedLimit {
		return FormatNumber(x)
	}
	return strconv.FormatFloat(Round2(x), 'f', 2, 64)
}

// FormatNumber renders x in its shortest form, switching to exponent
// notation for very large or very small magnitudes.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}

	abs := math.Abs(x)
	if abs != 0 && (abs >= fixedLimit || abs < 1e-6) {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		s = strings.Replace(s, "e+0", "e+", 1)
		return strings.Replace(s, "e-0", "e-", 1)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
