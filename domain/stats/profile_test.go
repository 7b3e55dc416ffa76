package stats

import (
	"math"
	"testing"

	"randmodel/domain/sample"
)

func floatSample(t *testing.T, values ...float64) *sample.Sample {
	t.Helper()
	s, err := sample.FromFloat64s(values)
	if err != nil {
		t.Fatalf("FromFloat64s returned error: %v", err)
	}
	return s
}

// TestBuildProfileOneThroughTen tests the descriptive profile of 1..10
func TestBuildProfileOneThroughTen(t *testing.T) {
	p, err := BuildProfile(floatSample(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	if err != nil {
		t.Fatalf("BuildProfile returned error: %v", err)
	}

	if p.Size != 10 {
		t.Errorf("Size = %d, want 10", p.Size)
	}
	if math.Abs(p.Mean-5.5) > 1e-12 {
		t.Errorf("Mean = %v, want 5.5", p.Mean)
	}
	if math.Abs(p.Median-5.5) > 1e-12 {
		t.Errorf("Median = %v, want 5.5", p.Median)
	}
	if math.Abs(p.StdDev-3.0276503540974917) > 1e-12 {
		t.Errorf("StdDev = %v, want 3.0276503540974917", p.StdDev)
	}
	if p.Min != 1 || p.Max != 10 {
		t.Errorf("Min/Max = %v/%v, want 1/10", p.Min, p.Max)
	}
	if p.Q25 < p.Min || p.Q25 > p.Median || p.Q75 < p.Median || p.Q75 > p.Max {
		t.Errorf("Quartiles out of order: min=%v q25=%v median=%v q75=%v max=%v",
			p.Min, p.Q25, p.Median, p.Q75, p.Max)
	}
	if math.Abs(p.Skewness) > 1e-12 {
		t.Errorf("Skewness = %v, want 0 for a symmetric sample", p.Skewness)
	}
	if p.Outliers != 0 {
		t.Errorf("Outliers = %d, want 0", p.Outliers)
	}
}

// TestBuildProfileSkewedSample tests skewness sign and outlier detection
func TestBuildProfileSkewedSample(t *testing.T) {
	// Long right tail: the spike at 100 is far outside the IQR fences.
	p, err := BuildProfile(floatSample(t, 1, 1, 1, 2, 2, 2, 3, 3, 3, 100))
	if err != nil {
		t.Fatalf("BuildProfile returned error: %v", err)
	}

	if p.Skewness <= 0 {
		t.Errorf("Skewness = %v, want positive for a right-tailed sample", p.Skewness)
	}
	if p.Outliers != 1 {
		t.Errorf("Outliers = %d, want 1", p.Outliers)
	}
	if p.Max != 100 {
		t.Errorf("Max = %v, want 100", p.Max)
	}
}

// TestSkewnessKurtosisDegenerateGuards tests the small-n and zero-spread guards
func TestSkewnessKurtosisDegenerateGuards(t *testing.T) {
	if got := calculateSkewness([]float64{1, 2}, 1.5, 0.5); got != 0 {
		t.Errorf("Skewness of two points = %v, want 0", got)
	}
	if got := calculateKurtosis([]float64{1, 2, 3}, 2, 1); got != 0 {
		t.Errorf("Kurtosis of three points = %v, want 0", got)
	}
	if got := calculateSkewness([]float64{4, 4, 4, 4}, 4, 0); got != 0 {
		t.Errorf("Skewness of constant data = %v, want 0", got)
	}
	if got := calculateKurtosis([]float64{4, 4, 4, 4}, 4, 0); got != 0 {
		t.Errorf("Kurtosis of constant data = %v, want 0", got)
	}
}
