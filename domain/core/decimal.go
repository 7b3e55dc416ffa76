package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits kept by every decimal
// division in the domain. Sums and products are exact; only division
// and root extraction round.
const Precision int32 = 28

// sqrtPrecision carries guard digits through Newton iteration so the
// rounded result is stable at Precision.
const sqrtPrecision = Precision + 4

const maxSqrtIterations = 64

var decimalTwo = decimal.NewFromInt(2)

// Sqrt computes the square root of d by Newton iteration seeded from
// the float64 estimate. The seed carries ~15 correct digits; each step
// doubles them, so convergence at Precision takes two or three steps.
func Sqrt(d decimal.Decimal) (decimal.Decimal, error) {
	if d.Sign() < 0 {
		return decimal.Zero, ErrNegativeSqrt
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	seed := math.Sqrt(d.InexactFloat64())
	if seed <= 0 || math.IsInf(seed, 0) || math.IsNaN(seed) {
		// Magnitude outside float64 range; Newton still converges
		// from 1, just more slowly.
		seed = 1
	}

	x := decimal.NewFromFloat(seed)
	for i := 0; i < maxSqrtIterations; i++ {
		next := x.Add(d.DivRound(x, sqrtPrecision)).DivRound(decimalTwo, sqrtPrecision)
		if next.Equal(x) {
			break
		}
		x = next
	}
	return x, nil
}
