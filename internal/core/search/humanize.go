package search

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Magnitude names for display. Values beyond the last entry render with the
// quadrillion-scaled figure; that is a cosmetic limit, not an error.
var magnitudeNames = []string{"", "thousand", "million", "billion", "trillion", "quadrillion"}

// HumanReadableNumber renders n for progress display: values below 1000
// as-is, larger values scaled to the largest applicable magnitude name with
// the requested number of decimals. 1500 with 1 decimal → "1.5 thousand".
func HumanReadableNumber(n float64, decimals int) string {
	n = math.Round(n)
	rendered := strconv.FormatFloat(n, 'f', 0, 64)
	if n < 1000 {
		return rendered
	}
	// Digit count gives floor(log10)/3 without float imprecision near the
	// magnitude boundaries.
	idx := (len(rendered) - 1) / 3
	if idx > len(magnitudeNames)-1 {
		idx = len(magnitudeNames) - 1
	}
	return fmt.Sprintf("%.*f %s", decimals, n/math.Pow(1000, float64(idx)), magnitudeNames[idx])
}

// HumanReadableBig is HumanReadableNumber for counters that may not fit a
// float64. The scaling divisor is applied in arbitrary precision before the
// final downcast, so even counts far past quadrillion render a finite figure.
func HumanReadableBig(n *big.Int, decimals int) string {
	if n.CmpAbs(big.NewInt(1000)) < 0 {
		return n.String()
	}
	idx := (len(n.Text(10)) - 1) / 3
	if idx > len(magnitudeNames)-1 {
		idx = len(magnitudeNames) - 1
	}
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(1000), big.NewInt(int64(idx)), nil))
	scaled, _ := new(big.Float).Quo(new(big.Float).SetInt(n), divisor).Float64()
	return fmt.Sprintf("%.*f %s", decimals, scaled, magnitudeNames[idx])
}
