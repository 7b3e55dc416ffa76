package stats

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"randmodel/domain/core"
	"randmodel/domain/sample"
)

func sampleFromStrings(t *testing.T, values ...string) *sample.Sample {
	t.Helper()
	parsed := make([]decimal.Decimal, len(values))
	for i, v := range values {
		parsed[i] = decimal.RequireFromString(v)
	}
	s, err := sample.New(parsed)
	if err != nil {
		t.Fatalf("sample.New(%v) returned error: %v", values, err)
	}
	return s
}

func describeStrings(t *testing.T, values ...string) *Summary {
	t.Helper()
	m, err := Describe(sampleFromStrings(t, values...))
	if err != nil {
		t.Fatalf("Describe(%v) returned error: %v", values, err)
	}
	return m
}

func oneThroughTen(t *testing.T) *Summary {
	t.Helper()
	return describeStrings(t, "1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
}

func assertDecimalNear(t *testing.T, name string, got decimal.Decimal, want string, tolerance string) {
	t.Helper()
	w := decimal.RequireFromString(want)
	tol := decimal.RequireFromString(tolerance)
	if got.Sub(w).Abs().Cmp(tol) > 0 {
		t.Errorf("%s = %s, want %s (tolerance %s)", name, got, want, tolerance)
	}
}

// TestDescribeGoldStandard tests the summary against hand-checked values for 1..10
func TestDescribeGoldStandard(t *testing.T) {
	m := oneThroughTen(t)

	assertDecimalNear(t, "Mean", m.Mean(), "5.5", "0")
	assertDecimalNear(t, "Dispersion", m.Dispersion(), "9.166666666666666666666666666667", "0.000000000000000000000000001")
	assertDecimalNear(t, "StandardDeviation", m.StandardDeviation(), "3.027650354097491", "0.000000000001")

	cv, err := m.CoefficientOfVariation()
	if err != nil {
		t.Fatalf("CoefficientOfVariation returned error: %v", err)
	}
	assertDecimalNear(t, "CoefficientOfVariation", cv, "0.550481882563180", "0.000000000001")

	tests := []struct {
		level ConfidenceLevel
		want  string
	}{
		{Confidence90, "1.574967592259"},
		{Confidence95, "1.876557131202"},
		{Confidence99, "2.466332229580"},
	}
	for _, test := range tests {
		hw, err := m.Confidence(test.level)
		if err != nil {
			t.Fatalf("Confidence(%s) returned error: %v", test.level, err)
		}
		assertDecimalNear(t, "Confidence("+string(test.level)+")", hw, test.want, "0.000000001")
	}
}

// TestDescribeStandardDeviationConsistency tests sd^2 ~ dispersion on arbitrary data
func TestDescribeStandardDeviationConsistency(t *testing.T) {
	m := describeStrings(t, "0.13", "7.9", "2.44", "2.44", "100.1", "0.0004")

	sd := m.StandardDeviation()
	back := sd.Mul(sd)
	if back.Sub(m.Dispersion()).Abs().Cmp(decimal.New(1, -20)) > 0 {
		t.Errorf("sd^2 = %s, dispersion = %s", back, m.Dispersion())
	}
	if m.Dispersion().Sign() < 0 {
		t.Errorf("Dispersion is negative: %s", m.Dispersion())
	}
}

// TestDescribeConstantSample tests the degenerate constant sequence
func TestDescribeConstantSample(t *testing.T) {
	m := describeStrings(t, "5", "5", "5", "5")

	if !m.Mean().Equal(decimal.NewFromInt(5)) {
		t.Errorf("Mean = %s, want 5", m.Mean())
	}
	if !m.Dispersion().IsZero() {
		t.Errorf("Dispersion = %s, want 0", m.Dispersion())
	}
	if !m.StandardDeviation().IsZero() {
		t.Errorf("StandardDeviation = %s, want 0", m.StandardDeviation())
	}

	cv, err := m.CoefficientOfVariation()
	if err != nil {
		t.Fatalf("CoefficientOfVariation returned error: %v", err)
	}
	if !cv.IsZero() {
		t.Errorf("CoefficientOfVariation = %s, want 0", cv)
	}
}

// TestCoefficientOfVariationZeroMean tests that a zero mean is a hard error
func TestCoefficientOfVariationZeroMean(t *testing.T) {
	m := describeStrings(t, "-1", "1")

	_, err := m.CoefficientOfVariation()
	if !errors.Is(err, core.ErrZeroMean) {
		t.Fatalf("Expected ErrZeroMean, got %v", err)
	}
}

// TestConfidenceOrdering tests monotonicity across levels and sizes
func TestConfidenceOrdering(t *testing.T) {
	small := describeStrings(t, "1", "2", "1", "2")
	large := describeStrings(t, "1", "2", "1", "2", "1", "2", "1", "2")

	var previous decimal.Decimal
	for i, level := range ConfidenceLevels {
		hw, err := small.Confidence(level)
		if err != nil {
			t.Fatalf("Confidence(%s) returned error: %v", level, err)
		}
		if i > 0 && hw.Cmp(previous) <= 0 {
			t.Errorf("Half-width at %s (%s) not above previous level (%s)", level, hw, previous)
		}
		previous = hw
	}

	smallHW, _ := small.Confidence(Confidence95)
	largeHW, _ := large.Confidence(Confidence95)
	if largeHW.Cmp(smallHW) >= 0 {
		t.Errorf("Half-width did not shrink with size: n=4 %s vs n=8 %s", smallHW, largeHW)
	}
}

// TestConfidenceUnknownLevel tests the unknown-level guard
func TestConfidenceUnknownLevel(t *testing.T) {
	m := oneThroughTen(t)
	if _, err := m.Confidence(ConfidenceLevel("0.42")); err == nil {
		t.Fatal("Expected error for unknown confidence level, got none")
	}
}

// TestDescribeNil tests nil input rejection
func TestDescribeNil(t *testing.T) {
	if _, err := Describe(nil); !errors.Is(err, core.ErrSampleTooSmall) {
		t.Fatalf("Expected ErrSampleTooSmall, got %v", err)
	}
}
