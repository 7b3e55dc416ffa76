package stats

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"randmodel/domain/core"
)

// TestRelativeKnownValues tests the percent deviation formula
func TestRelativeKnownValues(t *testing.T) {
	tests := []struct {
		current string
		base    string
		want    string
	}{
		{"110", "100", "10"},
		{"90", "100", "10"},
		{"100", "100", "0"},
		{"-90", "-100", "10"},
		{"5.5", "5.5", "0"},
		{"3", "2", "50"},
		{"0", "4", "100"},
	}
	for _, test := range tests {
		got, err := Relative(decimal.RequireFromString(test.current), decimal.RequireFromString(test.base))
		if err != nil {
			t.Fatalf("Relative(%s, %s) returned error: %v", test.current, test.base, err)
		}
		if !got.Equal(decimal.RequireFromString(test.want)) {
			t.Errorf("Relative(%s, %s) = %s, want %s", test.current, test.base, got, test.want)
		}
	}
}

// TestRelativeZeroBase tests that a zero reference is a hard error
func TestRelativeZeroBase(t *testing.T) {
	_, err := Relative(decimal.NewFromInt(5), decimal.Zero)
	if !errors.Is(err, core.ErrZeroBase) {
		t.Fatalf("Expected ErrZeroBase, got %v", err)
	}
}

// TestCompareScaledSample tests every tracked deviation for a doubled sequence
func TestCompareScaledSample(t *testing.T) {
	base := describeStrings(t, "1", "2", "3")
	current := describeStrings(t, "2", "4", "6")

	c, err := Compare(current, base)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}

	// Doubling scales mean and sd by 2 (100%), dispersion by 4 (300%),
	// and leaves the coefficient of variation unchanged (0%).
	assertDecimalNear(t, "Mean deviation", c.Mean(), "100", "0.0000000000000000000001")
	assertDecimalNear(t, "Dispersion deviation", c.Dispersion(), "300", "0.0000000000000000000001")
	assertDecimalNear(t, "StandardDeviation deviation", c.StandardDeviation(), "100", "0.0000000000000000000001")
	assertDecimalNear(t, "CV deviation", c.CoefficientOfVariation(), "0", "0.0000000000000000000001")

	for _, level := range ConfidenceLevels {
		rel, err := c.Confidence(level)
		if err != nil {
			t.Fatalf("Confidence(%s) returned error: %v", level, err)
		}
		assertDecimalNear(t, "Confidence deviation at "+string(level), rel, "100", "0.0000000000000000000001")
	}

	if c.Current() != current || c.Base() != base {
		t.Error("Comparison does not expose its composed summaries")
	}
}

// TestCompareIdenticalSamples tests that self-comparison is all zeros
func TestCompareIdenticalSamples(t *testing.T) {
	m := oneThroughTen(t)

	c, err := Compare(m, m)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	zero := "0.0000000000000000000001"
	assertDecimalNear(t, "Mean deviation", c.Mean(), "0", zero)
	assertDecimalNear(t, "Dispersion deviation", c.Dispersion(), "0", zero)
	assertDecimalNear(t, "StandardDeviation deviation", c.StandardDeviation(), "0", zero)
	assertDecimalNear(t, "CV deviation", c.CoefficientOfVariation(), "0", zero)
}

// TestCompareZeroMeanCurrent tests error propagation from the CV of the
// compared sample
func TestCompareZeroMeanCurrent(t *testing.T) {
	current := describeStrings(t, "-1", "1")
	base := describeStrings(t, "1", "3")

	if _, err := Compare(current, base); !errors.Is(err, core.ErrZeroMean) {
		t.Fatalf("Expected ErrZeroMean, got %v", err)
	}
}

// TestCompareZeroMeanBase tests that a zero-mean baseline fails at the
// first relative division
func TestCompareZeroMeanBase(t *testing.T) {
	current := describeStrings(t, "1", "3")
	base := describeStrings(t, "-1", "1")

	if _, err := Compare(current, base); !errors.Is(err, core.ErrZeroBase) {
		t.Fatalf("Expected ErrZeroBase, got %v", err)
	}
}

// TestCompareConstantBase tests error propagation from a zero baseline dispersion
func TestCompareConstantBase(t *testing.T) {
	base := describeStrings(t, "5", "5", "5")
	current := describeStrings(t, "1", "2", "3")

	if _, err := Compare(current, base); !errors.Is(err, core.ErrZeroBase) {
		t.Fatalf("Expected ErrZeroBase, got %v", err)
	}
}

// TestCompareNil tests nil guards
func TestCompareNil(t *testing.T) {
	m := oneThroughTen(t)
	if _, err := Compare(nil, m); err == nil {
		t.Error("Expected error for nil current")
	}
	if _, err := Compare(m, nil); err == nil {
		t.Error("Expected error for nil base")
	}
}
