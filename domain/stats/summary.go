// Package stats computes descriptive statistics, relative comparisons
// and correlation measures over samples. Closed-form math stays in
// decimal end to end; float64 appears only in the diagnostic profile.
package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"randmodel/domain/core"
	"randmodel/domain/sample"
)

// ConfidenceLevel keys a supported confidence level.
type ConfidenceLevel string

// Supported levels, in reporting order.
const (
	Confidence90 ConfidenceLevel = "0.90"
	Confidence95 ConfidenceLevel = "0.95"
	Confidence99 ConfidenceLevel = "0.99"
)

// ConfidenceLevels fixes iteration order for tables and reports. Map
// iteration would shuffle rows between runs.
var ConfidenceLevels = []ConfidenceLevel{Confidence90, Confidence95, Confidence99}

// quantiles maps each level to its two-sided normal quantile.
var quantiles = map[ConfidenceLevel]decimal.Decimal{
	Confidence90: decimal.RequireFromString("1.645"),
	Confidence95: decimal.RequireFromString("1.960"),
	Confidence99: decimal.RequireFromString("2.576"),
}

var hundred = decimal.NewFromInt(100)

// Summary holds the descriptive statistics of one sample. Everything is
// computed once at construction and immutable afterwards; only the
// coefficient of variation is evaluated on demand because a zero mean
// makes it undefined without invalidating the rest.
type Summary struct {
	data       *sample.Sample
	mean       decimal.Decimal
	dispersion decimal.Decimal
	stdDev     decimal.Decimal
	confidence map[ConfidenceLevel]decimal.Decimal
}

// Describe computes the summary of s.
func Describe(s *sample.Sample) (*Summary, error) {
	if s == nil {
		return nil, core.ErrSampleTooSmall
	}

	n := s.Size()
	size := decimal.NewFromInt(int64(n))

	sum := decimal.Zero
	for i := 0; i < n; i++ {
		sum = sum.Add(s.Value(i))
	}
	mean := sum.DivRound(size, core.Precision)

	// Unbiased estimator: squared deviations over size-1. The
	// subtraction happens in decimal, so near-equal values cannot
	// cancel catastrophically.
	squares := decimal.Zero
	for i := 0; i < n; i++ {
		d := s.Value(i).Sub(mean)
		squares = squares.Add(d.Mul(d))
	}
	dispersion := squares.DivRound(size.Sub(decimal.NewFromInt(1)), core.Precision)

	stdDev, err := core.Sqrt(dispersion)
	if err != nil {
		return nil, err
	}

	sqrtSize, err := core.Sqrt(size)
	if err != nil {
		return nil, err
	}
	confidence := make(map[ConfidenceLevel]decimal.Decimal, len(ConfidenceLevels))
	for _, level := range ConfidenceLevels {
		confidence[level] = quantiles[level].Mul(stdDev).DivRound(sqrtSize, core.Precision)
	}

	return &Summary{
		data:       s,
		mean:       mean,
		dispersion: dispersion,
		stdDev:     stdDev,
		confidence: confidence,
	}, nil
}

// Sample returns the described sample.
func (m *Summary) Sample() *sample.Sample {
	return m.data
}

// Size returns the described sample size.
func (m *Summary) Size() int {
	return m.data.Size()
}

// Mean returns the arithmetic mean.
func (m *Summary) Mean() decimal.Decimal {
	return m.mean
}

// Dispersion returns the unbiased variance estimate.
func (m *Summary) Dispersion() decimal.Decimal {
	return m.dispersion
}

// StandardDeviation returns the square root of the dispersion.
func (m *Summary) StandardDeviation() decimal.Decimal {
	return m.stdDev
}

// CoefficientOfVariation returns standard deviation over mean. A zero
// mean is a legitimate failure, never masked.
func (m *Summary) CoefficientOfVariation() (decimal.Decimal, error) {
	if m.mean.IsZero() {
		return decimal.Zero, core.NewDivisionError(core.ErrZeroMean, "coefficient of variation")
	}
	return m.stdDev.DivRound(m.mean, core.Precision), nil
}

// Confidence returns the confidence interval half-width at level:
// quantile * standard deviation / sqrt(size).
func (m *Summary) Confidence(level ConfidenceLevel) (decimal.Decimal, error) {
	hw, ok := m.confidence[level]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown confidence level %q", level)
	}
	return hw, nil
}
