package distribution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"randmodel/domain/core"
	"randmodel/domain/sample"
)

const (
	// fitCheckBins is the closed bin count over [0, max]; one open
	// tail bin is added on top.
	fitCheckBins = 12

	// fitCheckAlpha is the significance threshold for the verdict.
	fitCheckAlpha = 0.05

	// minExpected skips bins whose expected count is numerically zero.
	minExpected = 1e-9
)

// FitCheck reports how well a sample agrees with a fitted Erlang
// distribution under a chi-square test. It is diagnostic output; the
// pipeline never aborts on a poor fit.
type FitCheck struct {
	Bins             int     `json:"bins"`
	Statistic        float64 `json:"statistic"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
	Alpha            float64 `json:"alpha"`
	Acceptable       bool    `json:"acceptable"`
}

// CheckFit bins the sample into equal-width intervals over [0, max]
// plus an open tail and compares observed counts against Gamma(k, a)
// expectations. An Erlang with integer shape k and rate a is exactly
// that Gamma. Two parameters were fitted from the data, so the test
// runs on bins-1-2 degrees of freedom.
func CheckFit(s *sample.Sample, fit *ErlangFit) (*FitCheck, error) {
	if fit == nil || fit.K < 1 {
		return nil, core.ErrInvalidShape
	}
	if fit.Rate.Sign() <= 0 {
		return nil, core.ErrInvalidRate
	}

	data := s.Float64s()
	n := float64(len(data))

	max := data[0]
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return nil, fmt.Errorf("fit check needs positive values, max is %v", max)
	}

	dist := distuv.Gamma{Alpha: float64(fit.K), Beta: fit.Rate.InexactFloat64()}
	width := max / float64(fitCheckBins)

	observed := make([]float64, fitCheckBins+1)
	for _, v := range data {
		idx := int(v / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= fitCheckBins {
			idx = fitCheckBins - 1 // v == max lands in the last closed bin
		}
		observed[idx]++
	}

	expected := make([]float64, fitCheckBins+1)
	for i := 0; i < fitCheckBins; i++ {
		lo := float64(i) * width
		hi := float64(i+1) * width
		expected[i] = n * (dist.CDF(hi) - dist.CDF(lo))
	}
	expected[fitCheckBins] = n * dist.Survival(max) // open tail, observed 0

	statistic := 0.0
	used := 0
	for i := range expected {
		if expected[i] < minExpected {
			continue
		}
		used++
		diff := observed[i] - expected[i]
		statistic += diff * diff / expected[i]
	}

	df := used - 1 - 2
	if df < 1 {
		df = 1
	}

	chiDist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - chiDist.CDF(statistic)
	if math.IsNaN(pValue) {
		pValue = 0
	}

	return &FitCheck{
		Bins:             used,
		Statistic:        statistic,
		DegreesOfFreedom: df,
		PValue:           pValue,
		Alpha:            fitCheckAlpha,
		Acceptable:       pValue >= fitCheckAlpha,
	}, nil
}
