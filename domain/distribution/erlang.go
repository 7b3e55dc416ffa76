package distribution

import (
	"math"

	"github.com/shopspring/decimal"

	"randmodel/domain/core"
	"randmodel/domain/sample"
	"randmodel/domain/stats"
)

// UniformSource supplies uniform draws on [0, 1). Implementations carry
// their own stream state; the pipeline seeds exactly one stream per
// process and never reseeds it mid-run.
type UniformSource interface {
	Float64() float64
}

// ErlangFit holds the parameters of a fitted Erlang distribution: k
// exponential stages, each with rate a. RawShape keeps 1/cv^2 before
// rounding, which the run report prints alongside k.
type ErlangFit struct {
	K        int64           `json:"k"`
	Rate     decimal.Decimal `json:"a"`
	RawShape decimal.Decimal `json:"raw_shape"`
}

// ShapeFromCV estimates the stage count from a coefficient of
// variation: k = ceil(1 / cv^2). Rounding up, never truncating, keeps
// the fitted cv at or below the observed one.
func ShapeFromCV(cv decimal.Decimal) (int64, error) {
	raw, err := rawShape(cv)
	if err != nil {
		return 0, err
	}
	return raw.Ceil().IntPart(), nil
}

// rawShape computes 1/cv^2 at full working precision
func rawShape(cv decimal.Decimal) (decimal.Decimal, error) {
	if cv.IsZero() {
		return decimal.Zero, core.NewDivisionError(core.ErrZeroDispersion, "Erlang shape")
	}
	return decimal.NewFromInt(1).DivRound(cv.Mul(cv), core.Precision), nil
}

// FitErlang estimates Erlang parameters from a summary by moment
// matching: k = ceil(1/cv^2), a = k/mean.
func FitErlang(m *stats.Summary) (*ErlangFit, error) {
	cv, err := m.CoefficientOfVariation()
	if err != nil {
		return nil, err
	}
	raw, err := rawShape(cv)
	if err != nil {
		return nil, err
	}
	k := raw.Ceil().IntPart()
	rate := decimal.NewFromInt(k).DivRound(m.Mean(), core.Precision)
	return &ErlangFit{K: k, Rate: rate, RawShape: raw}, nil
}

// Mean returns the theoretical mean k/a.
func (f *ErlangFit) Mean() decimal.Decimal {
	return decimal.NewFromInt(f.K).DivRound(f.Rate, core.Precision)
}

// CV returns the theoretical coefficient of variation 1/sqrt(k).
func (f *ErlangFit) CV() (decimal.Decimal, error) {
	sqrtK, err := core.Sqrt(decimal.NewFromInt(f.K))
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(1).DivRound(sqrtK, core.Precision), nil
}

// Generator draws Erlang-distributed values from an injected uniform
// source.
type Generator struct {
	fit    *ErlangFit
	source UniformSource
}

// NewGenerator validates the fit and binds it to a uniform source.
func NewGenerator(fit *ErlangFit, source UniformSource) (*Generator, error) {
	if fit == nil || fit.K < 1 {
		return nil, core.ErrInvalidShape
	}
	if fit.Rate.Sign() <= 0 {
		return nil, core.ErrInvalidRate
	}
	if source == nil {
		return nil, core.ErrMissingSource
	}
	return &Generator{fit: fit, source: source}, nil
}

// Next draws one value as the sum of k exponential stages:
// -(1/a) * sum(ln(U_i)). The uniforms are float64, so the logarithms
// are too; only the final division by the rate runs in decimal, which
// keeps a high-precision rate constant exact.
func (g *Generator) Next() decimal.Decimal {
	sum := 0.0
	for i := int64(0); i < g.fit.K; i++ {
		u := g.source.Float64()
		if u == 0 {
			u = math.SmallestNonzeroFloat64 // ln(0) is -Inf
		}
		sum += math.Log(u)
	}
	return decimal.NewFromFloat(-sum).DivRound(g.fit.Rate, core.Precision)
}

// Sample draws n sequential values.
func (g *Generator) Sample(n int) (*sample.Sample, error) {
	values := make([]decimal.Decimal, n)
	for i := range values {
		values[i] = g.Next()
	}
	return sample.New(values)
}
