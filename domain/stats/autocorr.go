package stats

import (
	"github.com/shopspring/decimal"

	"randmodel/domain/core"
)

// Autocovariance computes the circular autocovariance at the given
// shift. The sequence is compared against its own rotation, so the tail
// wraps around to the front and every term keeps a partner.
func (m *Summary) Autocovariance(shift int) decimal.Decimal {
	n := m.data.Size()
	acc := decimal.Zero
	for i := 0; i < n; i++ {
		j := ((i+shift)%n + n) % n // negative shifts rotate the other way
		a := m.data.Value(i).Sub(m.mean)
		b := m.data.Value(j).Sub(m.mean)
		acc = acc.Add(a.Mul(b))
	}
	return acc
}

// Autocorrelation normalizes the autocovariance by dispersion and by
// size-1. Under this normalization shift 0 and a full wrap both equal
// 1: the rotated sum collapses to the squared-deviation sum, which is
// exactly dispersion*(size-1).
func (m *Summary) Autocorrelation(shift int) (decimal.Decimal, error) {
	if m.dispersion.IsZero() {
		return decimal.Zero, core.NewDivisionError(core.ErrZeroDispersion, "autocorrelation")
	}
	sizeMinusOne := decimal.NewFromInt(int64(m.data.Size() - 1))
	return m.Autocovariance(shift).
		DivRound(m.dispersion, core.Precision).
		DivRound(sizeMinusOne, core.Precision), nil
}

// AutocorrelationSeries evaluates lags 1 through maxLag in order.
func (m *Summary) AutocorrelationSeries(maxLag int) ([]decimal.Decimal, error) {
	if maxLag < 1 {
		return nil, nil
	}
	series := make([]decimal.Decimal, 0, maxLag)
	for lag := 1; lag <= maxLag; lag++ {
		r, err := m.Autocorrelation(lag)
		if err != nil {
			return nil, err
		}
		series = append(series, r)
	}
	return series, nil
}

// CrossCorrelation computes the normalized correlation between two
// described samples. Sizes must match exactly; there is no silent
// truncation of the longer sequence.
func (m *Summary) CrossCorrelation(other *Summary) (decimal.Decimal, error) {
	if other == nil || m.Size() != other.Size() {
		return decimal.Zero, core.ErrSizeMismatch
	}

	n := m.Size()
	num := decimal.Zero
	for i := 0; i < n; i++ {
		a := m.data.Value(i).Sub(m.mean)
		b := other.data.Value(i).Sub(other.mean)
		num = num.Add(a.Mul(b))
	}

	sizeMinusOne := decimal.NewFromInt(int64(n - 1))
	product := m.dispersion.Mul(sizeMinusOne).Mul(other.dispersion).Mul(sizeMinusOne)
	if product.IsZero() {
		return decimal.Zero, core.NewDivisionError(core.ErrZeroDispersion, "cross-correlation")
	}
	den, err := core.Sqrt(product)
	if err != nil {
		return decimal.Zero, err
	}
	return num.DivRound(den, core.Precision), nil
}
