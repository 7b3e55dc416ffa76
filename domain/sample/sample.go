// Package sample defines the immutable numeric sequence the analysis
// pipeline operates on. Values are high-precision decimals; conversion
// to float64 happens only at the edges (plots, profiling, fit checks).
package sample

import (
	"github.com/shopspring/decimal"

	"randmodel/domain/core"
)

// MinSize is the smallest usable sample. Dispersion divides by size-1,
// so a single value has no spread to estimate.
const MinSize = 2

// Sample is an immutable ordered sequence of positive-length. Order is
// part of the identity: autocorrelation and digests depend on it.
type Sample struct {
	values []decimal.Decimal
}

// New copies values into an immutable sample. Sequences shorter than
// MinSize are rejected.
func New(values []decimal.Decimal) (*Sample, error) {
	if len(values) < MinSize {
		return nil, core.ErrSampleTooSmall
	}
	owned := make([]decimal.Decimal, len(values))
	copy(owned, values)
	return &Sample{values: owned}, nil
}

// FromFloat64s builds a sample from float64 values. Generator output
// and tests use it; file input parses decimals directly.
func FromFloat64s(values []float64) (*Sample, error) {
	converted := make([]decimal.Decimal, len(values))
	for i, v := range values {
		converted[i] = decimal.NewFromFloat(v)
	}
	return New(converted)
}

// Size returns the number of values.
func (s *Sample) Size() int {
	return len(s.values)
}

// Value returns the value at index i.
func (s *Sample) Value(i int) decimal.Decimal {
	return s.values[i]
}

// Values returns a defensive copy of the underlying values.
func (s *Sample) Values() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.values))
	copy(out, s.values)
	return out
}

// Float64s converts the sample for float-based collaborators.
func (s *Sample) Float64s() []float64 {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = v.InexactFloat64()
	}
	return out
}

// Strings returns the canonical string form of each value. Digests and
// CSV output share this representation.
func (s *Sample) Strings() []string {
	out := make([]string, len(s.values))
	for i, v := range s.values {
		out[i] = v.String()
	}
	return out
}

// Prefix returns a sample over the first n values. The backing array is
// shared; samples are never mutated, so sharing is safe.
func (s *Sample) Prefix(n int) (*Sample, error) {
	if n < MinSize || n > len(s.values) {
		return nil, core.NewPrefixError(n, len(s.values))
	}
	return &Sample{values: s.values[:n:n]}, nil
}

// Digest returns the content digest of the sequence.
func (s *Sample) Digest() core.Digest {
	return core.ComputeSequenceDigest(s.Strings())
}
