// Package distribution classifies samples by their coefficient of
// variation and synthesizes Erlang-distributed sequences from fitted
// parameters.
package distribution

import (
	"github.com/shopspring/decimal"
)

// Epsilon is the half-width of the classification bands around 0 and 1.
var Epsilon = decimal.RequireFromString("0.0001")

// Family identifies the distribution family implied by a coefficient of
// variation.
type Family string

const (
	FamilyDeterministic    Family = "deterministic"
	FamilyErlang           Family = "erlang"
	FamilyExponential      Family = "exponential"
	FamilyHyperexponential Family = "hyperexponential"
)

// String returns the family name.
func (f Family) String() string {
	return string(f)
}

// Generable reports whether the pipeline can synthesize this family.
// Only the Erlang branch continues into fitting and generation; the
// others are terminal classification outcomes.
func (f Family) Generable() bool {
	return f == FamilyErlang
}

// Classify maps a coefficient of variation onto its family. Bands are
// half-open and ascending, so every value lands in exactly one family:
//
//	cv < epsilon          deterministic
//	cv < 1 - epsilon      erlang
//	cv < 1 + epsilon      exponential
//	otherwise             hyperexponential
func Classify(cv decimal.Decimal) Family {
	one := decimal.NewFromInt(1)
	switch {
	case cv.Cmp(Epsilon) < 0:
		return FamilyDeterministic
	case cv.Cmp(one.Sub(Epsilon)) < 0:
		return FamilyErlang
	case cv.Cmp(one.Add(Epsilon)) < 0:
		return FamilyExponential
	default:
		return FamilyHyperexponential
	}
}
