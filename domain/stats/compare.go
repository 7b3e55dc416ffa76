package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"randmodel/domain/core"
)

// Relative returns the percent deviation of current from base:
// |current - base| / |base| * 100. A zero base is a legitimate failure,
// never masked with a fallback value.
func Relative(current, base decimal.Decimal) (decimal.Decimal, error) {
	if base.IsZero() {
		return decimal.Zero, core.NewDivisionError(core.ErrZeroBase, "relative deviation")
	}
	return current.Sub(base).Abs().DivRound(base.Abs(), core.Precision).Mul(hundred), nil
}

// Comparison pairs a summary with a baseline summary and carries the
// percent deviation of every tracked statistic. It composes the two
// summaries instead of extending one, so both stay independently
// usable.
type Comparison struct {
	current *Summary
	base    *Summary

	mean       decimal.Decimal
	dispersion decimal.Decimal
	stdDev     decimal.Decimal
	cv         decimal.Decimal
	confidence map[ConfidenceLevel]decimal.Decimal
}

// Compare evaluates the relative deviation of every statistic of
// current against base. Deviations are computed eagerly so a zero
// baseline statistic surfaces here, not at render time.
func Compare(current, base *Summary) (*Comparison, error) {
	if current == nil || base == nil {
		return nil, core.ErrSampleTooSmall
	}

	mean, err := Relative(current.Mean(), base.Mean())
	if err != nil {
		return nil, err
	}
	dispersion, err := Relative(current.Dispersion(), base.Dispersion())
	if err != nil {
		return nil, err
	}
	stdDev, err := Relative(current.StandardDeviation(), base.StandardDeviation())
	if err != nil {
		return nil, err
	}

	currentCV, err := current.CoefficientOfVariation()
	if err != nil {
		return nil, err
	}
	baseCV, err := base.CoefficientOfVariation()
	if err != nil {
		return nil, err
	}
	cv, err := Relative(currentCV, baseCV)
	if err != nil {
		return nil, err
	}

	confidence := make(map[ConfidenceLevel]decimal.Decimal, len(ConfidenceLevels))
	for _, level := range ConfidenceLevels {
		currentHW, err := current.Confidence(level)
		if err != nil {
			return nil, err
		}
		baseHW, err := base.Confidence(level)
		if err != nil {
			return nil, err
		}
		rel, err := Relative(currentHW, baseHW)
		if err != nil {
			return nil, err
		}
		confidence[level] = rel
	}

	return &Comparison{
		current:    current,
		base:       base,
		mean:       mean,
		dispersion: dispersion,
		stdDev:     stdDev,
		cv:         cv,
		confidence: confidence,
	}, nil
}

// Current returns the compared summary.
func (c *Comparison) Current() *Summary {
	return c.current
}

// Base returns the baseline summary.
func (c *Comparison) Base() *Summary {
	return c.base
}

// Mean returns the percent deviation of the mean.
func (c *Comparison) Mean() decimal.Decimal {
	return c.mean
}

// Dispersion returns the percent deviation of the dispersion.
func (c *Comparison) Dispersion() decimal.Decimal {
	return c.dispersion
}

// StandardDeviation returns the percent deviation of the standard
// deviation.
func (c *Comparison) StandardDeviation() decimal.Decimal {
	return c.stdDev
}

// CoefficientOfVariation returns the percent deviation of the
// coefficient of variation.
func (c *Comparison) CoefficientOfVariation() decimal.Decimal {
	return c.cv
}

// Confidence returns the percent deviation of the confidence interval
// half-width at level.
func (c *Comparison) Confidence(level ConfidenceLevel) (decimal.Decimal, error) {
	rel, ok := c.confidence[level]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown confidence level %q", level)
	}
	return rel, nil
}
